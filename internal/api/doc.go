// Package api provides HTTP client functionality for communicating with the
// BugBountyKE-KSP API. It handles bearer authentication, request/response
// serialization (JSON, plus multipart form encoding for image uploads), and
// classification of HTTP failures into the shared error types.
//
// # Client Creation
//
// Create a client with [NewClient] and a [Config]. The API key and base URL
// are required; the key is sent as "Authorization: Bearer <key>" on every
// request and never appears in logs.
//
// # Retry Behavior
//
// Retries are off unless [Config.Retry] is set: publishing is not
// idempotent, so the client never retries behind the caller's back. When
// enabled, transient failures (network errors and the status codes in
// [RetryConfig.RetryableOn]) are retried with exponential backoff and
// jitter. A 429 response with a Retry-After header waits the server's
// suggested duration instead of the computed backoff.
//
// # Error Handling
//
// Failed exchanges are returned as typed errors from the apierrors package:
//
//   - AuthenticationError: the key was rejected (401/403).
//   - NotFoundError: the referenced article does not exist (404).
//   - RateLimitError: quota exceeded (429), with a retry hint when given.
//   - NetworkError: the exchange could not complete at all.
//   - APIError: any other non-2xx response.
//
// Use errors.Is with the apierrors sentinels to check for specific
// conditions:
//
//	if errors.Is(err, apierrors.ErrArticleNotFound) {
//	    // Handle missing article
//	}
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may
// call methods on a single Client simultaneously.
package api
