package bugbounty

import (
	"github.com/bugbounty-ksp/client-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = apierrors.ErrClientClosed

	// ErrUnauthorized is returned when the API key is invalid or rejected.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrArticleNotFound is returned when an article is not found.
	ErrArticleNotFound = apierrors.ErrArticleNotFound

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = apierrors.ErrRateLimited
)

// BugBountyError is implemented by all SDK errors.
type BugBountyError interface {
	error
	BugBountyError() // marker method
}

// APIError represents an unclassified HTTP error from the BugBountyKE-KSP
// API. More specific failures surface as AuthenticationError, NotFoundError
// or RateLimitError instead.
type APIError = apierrors.APIError

// AuthenticationError indicates the API key was missing, malformed or
// rejected by the platform. It carries a masked rendering of the key; the
// raw key never appears in errors or logs.
type AuthenticationError = apierrors.AuthenticationError

// NotFoundError indicates the referenced article does not exist.
type NotFoundError = apierrors.NotFoundError

// RateLimitError indicates the platform rate limit was exceeded. RetryAfter
// carries the server's retry hint when one was supplied; the client surfaces
// the hint rather than sleeping on it.
type RateLimitError = apierrors.RateLimitError

// ValidationError indicates locally detectable bad input. It is returned
// before any request is sent.
type ValidationError = apierrors.ValidationError

// NetworkError represents a network-level failure.
type NetworkError = apierrors.NetworkError
