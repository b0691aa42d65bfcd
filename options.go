package radmachine

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/radmachine/client-go/internal/api"
)

// DefaultBaseURL is the production RadMachine server.
const DefaultBaseURL = "https://radmachine.radformation.com"

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL            string
	authHeader         string
	httpClient         *http.Client
	timeout            time.Duration
	retries            int
	baseDelay          time.Duration
	maxDelay           time.Duration
	minRequestInterval time.Duration
	logger             hclog.Logger
	acceptCreateOK     bool
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the server root URL. Use this to target a staging
// instance, e.g. https://staging.radmachine.radformation.com.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithAuthHeader overrides the header the API token is sent in.
// Default: RadAuthorization.
func WithAuthHeader(name string) Option {
	return func(c *clientConfig) {
		c.authHeader = name
	}
}

// WithHTTPClient sets a custom HTTP client. The client installs its own
// redirect policy on a copy; redirects always surface as errors. A
// Timeout set on the custom client takes precedence over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout bounds each physical HTTP call. Default: 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retry attempts for transport failures,
// 5xx and 429 responses. Zero disables retries, so every request makes
// exactly one physical call. Default: 3.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithBackoff sets the base and maximum retry delay. The delay doubles
// after each attempt, capped at max. Default: 500ms base, 30s max.
func WithBackoff(base, max time.Duration) Option {
	return func(c *clientConfig) {
		c.baseDelay = base
		c.maxDelay = max
	}
}

// WithMinRequestInterval sets the minimum spacing between physical
// requests issued by this client, throttling all operations including
// transparent page fetches. Zero disables throttling.
// Default: 500 milliseconds.
func WithMinRequestInterval(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.minRequestInterval = interval
	}
}

// WithLogger sets the logger for retry and backoff diagnostics. The API
// token is never logged. Default: no output.
func WithLogger(logger hclog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithAcceptCreateOK makes create operations accept any 2xx status.
// Some endpoints reply 200 rather than 201 on successful creation; by
// default the client rejects those with an UnexpectedStatusError.
func WithAcceptCreateOK() Option {
	return func(c *clientConfig) {
		c.acceptCreateOK = true
	}
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		baseURL:            DefaultBaseURL,
		minRequestInterval: api.DefaultMinRequestInterval,
		retries:            api.DefaultMaxRetries,
	}
}
