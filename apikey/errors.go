package apikey

import "errors"

// Errors reported by key generation and masking.
var (
	// ErrUnknownEnvironment is returned by Generate and GenerateBatch when
	// env is neither EnvironmentLive nor EnvironmentTest.
	ErrUnknownEnvironment = errors.New("apikey: unknown environment")

	// ErrInvalidCount is returned by GenerateBatch when count is not
	// positive.
	ErrInvalidCount = errors.New("apikey: count must be positive")

	// ErrInvalidVisibleChars is returned by MaskN when visibleChars is
	// negative.
	ErrInvalidVisibleChars = errors.New("apikey: visible chars must not be negative")
)
