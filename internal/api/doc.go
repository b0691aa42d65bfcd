// Package api provides HTTP client functionality for communicating
// with the RadMachine API. It handles authentication, rate limiting,
// request/response serialization, pagination traversal and automatic
// retry with exponential backoff for transient failures.
//
// # Request Flow
//
// Every operation funnels through [Client.Do], which waits on the
// per-client rate limiter, attaches the token header, issues the call
// and classifies the result. Requests are addressed relative to the
// endpoint root {BaseURL}/{CustomerID}/api/; absolute URLs from
// pagination cursors and resource references are accepted as-is.
//
// # Retry Behavior
//
// Transport failures, 5xx responses and 429 responses are retried up
// to MaxRetries times with exponential backoff (BaseDelay doubling up
// to MaxDelay, jittered). A 429 response's Retry-After header, in
// seconds or HTTP-date form, extends the delay when it is longer than
// the scheduled backoff. All other statuses are terminal on the first
// response.
//
// # Error Handling
//
// Terminal failures map onto a small taxonomy: [ConfigError],
// [TransportError], [RequestError] (4xx), [ServerError] (5xx after
// retries), [RateLimitError] (429 after retries), [RedirectError]
// (3xx), [ContentTypeError], [UnexpectedStatusError] and
// [AmbiguousResultError]. Status-driven errors support errors.Is
// against the package sentinels:
//
//	if errors.Is(err, api.ErrNotFound) {
//		// handle missing resource
//	}
//
// The API token never appears in log output or error strings.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. The rate limiter's
// check-and-wait is atomic across goroutines, so goroutines sharing a
// Client share one request rate.
package api
