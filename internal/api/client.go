package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
)

// Default client settings.
const (
	DefaultAuthHeader         = "RadAuthorization"
	DefaultTimeout            = 30 * time.Second
	DefaultMinRequestInterval = 500 * time.Millisecond
)

// Config holds the settings for an API client. It is consulted only at
// construction time; a Client never reads it afterwards.
type Config struct {
	// BaseURL is the server root, e.g. https://radmachine.radformation.com.
	BaseURL string
	// CustomerID is the tenant path segment identifying the account.
	CustomerID string
	// Token is the API token. It is sent on every request and never
	// appears in logs or error messages.
	Token string
	// AuthHeader is the header the token is sent in. Defaults to
	// RadAuthorization.
	AuthHeader string
	// MinRequestInterval is the minimum spacing between physical
	// requests issued by this client. Zero disables rate limiting.
	MinRequestInterval time.Duration
	// MaxRetries is the number of retry attempts after the initial
	// request. Zero disables retries; the caller owns the default.
	MaxRetries int
	// BaseDelay and MaxDelay configure the backoff schedule. See
	// RetryPolicy. Zero means the package default.
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// Timeout bounds each physical HTTP call.
	Timeout time.Duration
	// HTTPClient overrides the transport. The client installs its own
	// redirect policy on a copy; redirects always surface as errors.
	HTTPClient *http.Client
	// Logger receives debug output for retries and backoff. Defaults
	// to a null logger.
	Logger hclog.Logger
	// AcceptCreateOK makes Create treat any 2xx as success instead of
	// requiring 201. The mismatch is still logged.
	AcceptCreateOK bool
}

func (c Config) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.CustomerID, validation.Required),
		validation.Field(&c.Token, validation.Required),
		validation.Field(&c.MinRequestInterval, validation.By(nonNegativeDuration)),
		validation.Field(&c.MaxRetries, validation.Min(0)),
	)
}

func nonNegativeDuration(value interface{}) error {
	if d, ok := value.(time.Duration); ok && d < 0 {
		return errors.New("must be non-negative")
	}
	return nil
}

// Client is the HTTP API client. It applies authentication, rate
// limiting, retry and error classification uniformly to every request.
// A Client is safe for concurrent use; the rate limiter serializes the
// spacing of physical requests across goroutines.
type Client struct {
	root           string // {BaseURL}/{CustomerID}/api/
	token          string
	authHeader     string
	httpClient     *http.Client
	limiter        *rate.Limiter
	retry          RetryPolicy
	logger         hclog.Logger
	acceptCreateOK bool
}

// NewClient creates an API client from cfg. It returns a *ConfigError
// if the base URL, customer ID or token is missing, or if the request
// interval is negative.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	if cfg.AuthHeader == "" {
		cfg.AuthHeader = DefaultAuthHeader
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	retry := DefaultRetryPolicy()
	retry.MaxRetries = cfg.MaxRetries
	if cfg.BaseDelay > 0 {
		retry.BaseDelay = cfg.BaseDelay
	}
	if cfg.MaxDelay > 0 {
		retry.MaxDelay = cfg.MaxDelay
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		if clone.Timeout == 0 {
			clone.Timeout = cfg.Timeout
		}
		httpClient = &clone
	}
	// Redirects must surface to the caller, never be followed.
	httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	var limiter *rate.Limiter
	if cfg.MinRequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.MinRequestInterval), 1)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		root:           strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.CustomerID, "/") + "/api/",
		token:          cfg.Token,
		authHeader:     cfg.AuthHeader,
		httpClient:     httpClient,
		limiter:        limiter,
		retry:          retry,
		logger:         logger,
		acceptCreateOK: cfg.AcceptCreateOK,
	}, nil
}

// Root returns the endpoint root, {BaseURL}/{CustomerID}/api/.
func (c *Client) Root() string {
	return c.root
}

// EndpointURL returns the absolute URL for a resource path, e.g.
// "qa/unittestcollections/123/".
func (c *Client) EndpointURL(path string) string {
	return c.root + strings.TrimLeft(path, "/")
}

// Request describes one logical API call. Either Path (relative to the
// endpoint root) or URL (absolute, as returned in pagination cursors
// and resource references) must be set; URL wins when both are.
type Request struct {
	Method string
	Path   string
	URL    string
	Query  url.Values
	Body   any
}

// Response is the decoded result of a successful request. JSON is set
// when the server declared a JSON content type, Raw otherwise.
type Response struct {
	StatusCode int
	Header     http.Header
	JSON       json.RawMessage
	Raw        []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if r.JSON == nil {
		return &ContentTypeError{ContentType: r.Header.Get("Content-Type")}
	}
	if err := json.Unmarshal(r.JSON, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) requestURL(req Request) (string, error) {
	raw := req.URL
	if raw == "" {
		raw = c.EndpointURL(req.Path)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse request URL: %w", err)
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for key, vals := range req.Query {
			for _, v := range vals {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Do performs one logical request: it waits on the rate limiter, issues
// the HTTP call, retries transport failures, 5xx and 429 responses
// within the retry budget, and classifies the final response. Transport
// errors exhaust into *TransportError, 5xx into *ServerError, 429 into
// *RateLimitError; 3xx and non-429 4xx are terminal immediately.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	target, err := c.requestURL(req)
	if err != nil {
		return nil, err
	}

	// Marshal once so the body can be replayed on every attempt.
	var body []byte
	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	schedule := c.retry.schedule()

	for attempt := 0; ; attempt++ {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.attempt(ctx, req.Method, target, body)
		if err != nil {
			if attempt >= c.retry.MaxRetries {
				return nil, &TransportError{Err: err, Attempts: attempt + 1}
			}
			delay := schedule.NextBackOff()
			c.logger.Debug("transport failure, retrying",
				"method", req.Method, "url", target, "attempt", attempt+1, "delay", delay, "error", err)
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		if !retryableStatus(resp.StatusCode) || attempt >= c.retry.MaxRetries {
			return nil, c.classify(resp, attempt+1)
		}

		delay := schedule.NextBackOff()
		if resp.StatusCode == http.StatusTooManyRequests {
			if after, ok := parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()); ok && after > delay {
				delay = after
			}
		}
		c.logger.Debug("retryable status, retrying",
			"method", req.Method, "url", target, "status", resp.StatusCode, "attempt", attempt+1, "delay", delay)
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// wait blocks until the minimum interval since the previous physical
// request has elapsed. The limiter is atomic with respect to concurrent
// callers, so sharing one Client yields one global request rate.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// attempt issues a single physical HTTP call and reads the body.
func (c *Client) attempt(ctx context.Context, method, target string, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set(c.authHeader, "Token "+c.token)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
	}
	if isJSON(httpResp.Header.Get("Content-Type")) {
		resp.JSON = data
	} else {
		resp.Raw = data
	}
	return resp, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// classify maps a terminal non-2xx response onto the error taxonomy.
func (c *Client) classify(resp *Response, attempts int) error {
	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return &RedirectError{StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}
	case resp.StatusCode == http.StatusTooManyRequests:
		after, _ := parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		return &RateLimitError{Attempts: attempts, RetryAfter: after}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &RequestError{StatusCode: resp.StatusCode, Detail: resp.JSON}
	default:
		return &ServerError{StatusCode: resp.StatusCode, Attempts: attempts, Detail: resp.JSON}
	}
}
