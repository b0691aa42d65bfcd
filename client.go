package radmachine

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/radmachine/client-go/internal/api"
)

// Client is the RadMachine API client. All operations share one rate
// limiter and retry policy, so callers needing a global request rate
// across goroutines share a single Client.
type Client struct {
	api *api.Client
}

// New creates a client for the given API token and customer identifier.
// If you access RadMachine at https://radmachine.radformation.com/myclinic/
// then your customer ID is "myclinic".
func New(token, customerID string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if customerID == "" {
		return nil, ErrMissingCustomerID
	}

	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:            cfg.baseURL,
		CustomerID:         customerID,
		Token:              token,
		AuthHeader:         cfg.authHeader,
		MinRequestInterval: cfg.minRequestInterval,
		MaxRetries:         cfg.retries,
		BaseDelay:          cfg.baseDelay,
		MaxDelay:           cfg.maxDelay,
		Timeout:            cfg.timeout,
		HTTPClient:         cfg.httpClient,
		Logger:             cfg.logger,
		AcceptCreateOK:     cfg.acceptCreateOK,
	})
	if err != nil {
		return nil, err
	}

	return &Client{api: apiClient}, nil
}

// EndpointURL returns the absolute URL for a resource path under the
// customer's API root, e.g. "qa/unittestcollections/123/".
func (c *Client) EndpointURL(path string) string {
	return c.api.EndpointURL(path)
}

// Filter holds query parameters passed through opaquely to the API:
// exact-match fields, lookups like unit__name or skipped, and so on.
type Filter map[string]string

// WithOrdering returns a copy of the filter with the ordering parameter
// set. Prefix a field with "-" for descending order.
func (f Filter) WithOrdering(ordering string) Filter {
	out := make(Filter, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out["ordering"] = ordering
	return out
}

func (f Filter) query() url.Values {
	if len(f) == 0 {
		return nil
	}
	q := make(url.Values, len(f))
	for k, v := range f {
		q.Set(k, v)
	}
	return q
}

// Attachment is a binary payload returned by the server.
type Attachment = api.Attachment

// Get fetches a single resource as raw JSON. ref may be a path relative
// to the customer's API root or an absolute resource URL from a
// previous response.
func (c *Client) Get(ctx context.Context, ref string, filter Filter) (json.RawMessage, error) {
	return c.api.Get(ctx, ref, filter.query())
}

// List iterates a collection as raw JSON records, fetching pages
// transparently. The typed helpers (ListUnits, ListTestInstances, ...)
// cover the common endpoints; List is the escape hatch for the rest.
func (c *Client) List(ctx context.Context, path string, filter Filter) *Iter[json.RawMessage] {
	return listAs[json.RawMessage](c, ctx, path, filter)
}

// Create POSTs a JSON body to path and returns the created record.
func (c *Client) Create(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.api.Create(ctx, path, body)
}

// Download fetches a binary resource such as a generated report.
func (c *Client) Download(ctx context.Context, ref string, filter Filter) (*Attachment, error) {
	return c.api.Download(ctx, ref, filter.query())
}

// UploadEncodedFile base64-encodes data into the named field of body
// and creates the record at path. This follows the API's convention of
// embedding binary attachments as base64 strings inside a JSON body.
func (c *Client) UploadEncodedFile(ctx context.Context, path string, body map[string]any, field string, data []byte) (json.RawMessage, error) {
	return c.api.CreateEncodedFile(ctx, path, body, field, data)
}

// get fetches ref and decodes it into T.
func getAs[T any](c *Client, ctx context.Context, ref string, filter Filter) (*T, error) {
	raw, err := c.api.Get(ctx, ref, filter.query())
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// firstAs returns the first record matching the filter, or ErrNoResult.
func firstAs[T any](c *Client, ctx context.Context, path string, query url.Values) (*T, error) {
	raw, err := c.api.First(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNoResult
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// oneAs returns the single record matching the filter, ErrNoResult when
// nothing matches, or an *AmbiguousResultError on multiple matches.
func oneAs[T any](c *Client, ctx context.Context, path string, filter Filter) (*T, error) {
	raw, err := c.api.One(ctx, path, filter.query())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNoResult
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
