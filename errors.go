package radmachine

import (
	"errors"

	"github.com/radmachine/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingToken is returned when no API token is provided.
	ErrMissingToken = errors.New("API token is required")

	// ErrMissingCustomerID is returned when no customer ID is provided.
	ErrMissingCustomerID = errors.New("customer ID is required")

	// ErrNoResult is returned by single-record lookups that match nothing.
	ErrNoResult = errors.New("no matching record")

	// ErrUnauthorized is returned when the API token is invalid or expired.
	ErrUnauthorized = api.ErrUnauthorized

	// ErrForbidden is returned when the token does not grant access.
	ErrForbidden = api.ErrForbidden

	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = api.ErrNotFound

	// ErrRateLimited is returned when the API rate limit is exceeded
	// and the retry budget has been exhausted.
	ErrRateLimited = api.ErrRateLimited
)

// Error types surfaced by the client. These alias the transport layer's
// types so that errors.As works on values returned from any operation.
type (
	// ConfigError indicates invalid client configuration.
	ConfigError = api.ConfigError

	// TransportError indicates a network-level failure that persisted
	// through all retry attempts.
	TransportError = api.TransportError

	// RequestError indicates a terminal 4xx response; Detail carries
	// the server-provided error body for diagnostics.
	RequestError = api.RequestError

	// ServerError indicates a 5xx response that persisted through all
	// retry attempts.
	ServerError = api.ServerError

	// RateLimitError indicates a 429 response that persisted through
	// all retry attempts.
	RateLimitError = api.RateLimitError

	// RedirectError indicates an unexpected 3xx response.
	RedirectError = api.RedirectError

	// ContentTypeError indicates a binary/JSON payload mismatch.
	ContentTypeError = api.ContentTypeError

	// UnexpectedStatusError indicates a success status the operation
	// does not accept, such as 200 on a strict create.
	UnexpectedStatusError = api.UnexpectedStatusError

	// AmbiguousResultError indicates a strict single-record lookup
	// matched more than one record.
	AmbiguousResultError = api.AmbiguousResultError
)
