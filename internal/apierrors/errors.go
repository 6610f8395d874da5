// Package apierrors provides shared error types for the BugBountyKE-KSP client.
package apierrors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrUnauthorized is returned when the API key is invalid or rejected.
	ErrUnauthorized = errors.New("invalid or rejected API key")

	// ErrArticleNotFound is returned when an article is not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// APIError represents an unclassified HTTP error from the BugBountyKE-KSP
// API. Statuses with a dedicated type (401/403, 404, 429) are surfaced as
// AuthenticationError, NotFoundError and RateLimitError instead.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string // if returned by server
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("API error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// BugBountyError implements the marker interface for SDK errors.
func (e *APIError) BugBountyError() {}

// AuthenticationError indicates the API rejected the key (HTTP 401/403), or
// the key failed the local format check before any request was made.
// MaskedKey is a safe rendering of the offending key; raw key material is
// never attached to errors.
type AuthenticationError struct {
	StatusCode int // 0 when the failure was local
	Message    string
	MaskedKey  string
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrUnauthorized
}

// BugBountyError implements the marker interface for SDK errors.
func (e *AuthenticationError) BugBountyError() {}

// NotFoundError indicates the referenced resource does not exist (HTTP 404).
type NotFoundError struct {
	StatusCode int
	Message    string
	ArticleID  string // when the request named one
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrArticleNotFound
}

// BugBountyError implements the marker interface for SDK errors.
func (e *NotFoundError) BugBountyError() {}

// WithArticleID returns a copy of the error with the article id attached.
// If the error is not a *NotFoundError, it is returned unchanged.
func WithArticleID(err error, id string) error {
	if err == nil {
		return nil
	}
	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return &NotFoundError{
			StatusCode: nfErr.StatusCode,
			Message:    nfErr.Message,
			ArticleID:  id,
		}
	}
	return err
}

// RateLimitError indicates the API rate limit was exceeded (HTTP 429).
// RetryAfter carries the server's suggested wait before retrying; it is
// zero when the server gave no hint.
type RateLimitError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded: %s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// BugBountyError implements the marker interface for SDK errors.
func (e *RateLimitError) BugBountyError() {}

// ValidationError indicates caller input failed a local check. It is always
// produced before any network request; server-side rejections surface as
// APIError with the server's status code.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// BugBountyError implements the marker interface for SDK errors.
func (e *ValidationError) BugBountyError() {}

// NetworkError represents a network-level failure: the request could not
// complete and no HTTP status was obtained.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// BugBountyError implements the marker interface for SDK errors.
func (e *NetworkError) BugBountyError() {}
