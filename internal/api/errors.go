package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrUnauthorized indicates the API token is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API token")
	// ErrForbidden indicates the token does not grant access to the resource.
	ErrForbidden = errors.New("access to resource forbidden")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimited indicates the API rate limit was exceeded and the
	// retry budget has been exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// ConfigError indicates the client was constructed with invalid
// configuration. It is never retried.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid client configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError represents a network-level failure (connection reset,
// DNS failure, timeout) that persisted through all retry attempts.
type TransportError struct {
	Err      error
	Attempts int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestError represents a terminal 4xx response. Detail carries the
// server-provided error body, if any, for caller diagnostics.
type RequestError struct {
	StatusCode int
	Detail     json.RawMessage
}

func (e *RequestError) Error() string {
	if len(e.Detail) > 0 {
		return fmt.Sprintf("request rejected with status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("request rejected with status %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *RequestError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 403:
		return target == ErrForbidden
	case 404:
		return target == ErrNotFound
	}
	return false
}

// ServerError represents a 5xx response that persisted through all
// retry attempts.
type ServerError struct {
	StatusCode int
	Attempts   int
	Detail     json.RawMessage
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d after %d attempt(s)", e.StatusCode, e.Attempts)
}

// RateLimitError represents a 429 response that persisted through all
// retry attempts. RetryAfter is the last Retry-After value sent by the
// server, if any.
type RateLimitError struct {
	Attempts   int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited after %d attempt(s)", e.Attempts)
}

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// RedirectError represents an unexpected 3xx response. The API never
// requires the client to follow redirects, so any redirect is terminal.
type RedirectError struct {
	StatusCode int
	Location   string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("unexpected redirect %d to %s", e.StatusCode, e.Location)
}

// ContentTypeError indicates the server returned a body of the wrong
// kind, such as a JSON error document where binary report data was
// expected.
type ContentTypeError struct {
	ContentType string
	Detail      json.RawMessage
}

func (e *ContentTypeError) Error() string {
	if len(e.Detail) > 0 {
		return fmt.Sprintf("unexpected content type %q: %s", e.ContentType, e.Detail)
	}
	return fmt.Sprintf("unexpected content type %q", e.ContentType)
}

// UnexpectedStatusError indicates a success response with a status code
// the operation does not treat as success, such as a 200 reply to a
// create call in strict mode.
type UnexpectedStatusError struct {
	StatusCode int
	Expected   int
	Detail     json.RawMessage
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected success status %d (want %d)", e.StatusCode, e.Expected)
}

// AmbiguousResultError indicates a strict single-record lookup matched
// more than one record.
type AmbiguousResultError struct {
	Path  string
	Count int
}

func (e *AmbiguousResultError) Error() string {
	return fmt.Sprintf("query %s matched %d records, want exactly one", e.Path, e.Count)
}
