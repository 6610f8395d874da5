// Package apikey generates, validates and masks BugBountyKE-KSP API keys.
//
// Keys are opaque bearer credentials of the form "sk_<secret>" (live) or
// "sk_test_<secret>" (test), where the secret is a fixed number of
// characters drawn from a cryptographically secure random source. The
// package never logs or stores key material; Mask and GetInfo exist so
// callers can avoid doing so too.
package apikey

import (
	"fmt"
	"strings"
	"unicode/utf8"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Key format constants.
const (
	// Prefix marks live-environment keys.
	Prefix = "sk_"

	// TestPrefix marks test-environment keys. Checked before Prefix when
	// classifying, since every test key also starts with "sk_".
	TestPrefix = "sk_test_"

	// SecretLength is the number of random characters following the prefix.
	SecretLength = 32

	// DefaultVisibleChars is how many trailing secret characters Mask keeps
	// visible.
	DefaultVisibleChars = 4
)

// alphabet is the character set secrets are drawn from (base62). At 32
// characters that is well over 128 bits of entropy per key. The alphabet
// contains no underscore, so the prefix boundary is never ambiguous.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Environment identifies which platform environment a key belongs to.
type Environment string

const (
	EnvironmentLive    Environment = "live"
	EnvironmentTest    Environment = "test"
	EnvironmentUnknown Environment = "unknown"
)

// Key type classifications reported by GetInfo.
const (
	TypeSecretKey = "secret_key"
	TypeInvalid   = "invalid"
)

// prefixFor returns the literal prefix for env, or "" if env is not an
// environment keys are issued for.
func prefixFor(env Environment) string {
	switch env {
	case EnvironmentLive:
		return Prefix
	case EnvironmentTest:
		return TestPrefix
	default:
		return ""
	}
}

// environmentOf classifies a key string by its prefix alone.
func environmentOf(key string) Environment {
	switch {
	case strings.HasPrefix(key, TestPrefix):
		return EnvironmentTest
	case strings.HasPrefix(key, Prefix):
		return EnvironmentLive
	default:
		return EnvironmentUnknown
	}
}

// Generate creates a new API key for the given environment. The secret is
// drawn from a cryptographically secure random source; collisions between
// generated keys are cryptographically negligible.
func Generate(env Environment) (string, error) {
	prefix := prefixFor(env)
	if prefix == "" {
		return "", ErrUnknownEnvironment
	}
	secret, err := nanoid.Generate(alphabet, SecretLength)
	if err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return prefix + secret, nil
}

// GenerateBatch creates count keys for the given environment.
func GenerateBatch(count int, env Environment) ([]string, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	keys := make([]string, 0, count)
	for i := 0; i < count; i++ {
		key, err := Generate(env)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// IsValidFormat reports whether key is structurally a well-formed API key:
// a recognized environment prefix, the exact total length for that
// environment, and a secret restricted to the allowed alphabet. It does
// not contact the server; a well-formed key may still be rejected when
// used against the API.
func IsValidFormat(key string) bool {
	prefix := prefixFor(environmentOf(key))
	if prefix == "" {
		return false
	}
	if len(key) != len(prefix)+SecretLength {
		return false
	}
	for i := len(prefix); i < len(key); i++ {
		if strings.IndexByte(alphabet, key[i]) < 0 {
			return false
		}
	}
	return true
}

// Mask renders key safe for logging: the environment prefix stays, the
// secret is replaced by '*' filler except for its last DefaultVisibleChars
// characters. The result always has the same length as the input.
func Mask(key string) string {
	masked, _ := MaskN(key, DefaultVisibleChars)
	return masked
}

// MaskN is Mask with a caller-chosen number of visible trailing characters.
// visibleChars must not be negative. Asking to reveal the entire secret
// (visibleChars at or above the secret's length) degrades to a full mask:
// this function exists to hide key material, so it errs toward showing
// nothing rather than everything. A string without a recognized prefix is
// treated as entirely secret, with the same trailing-visibility rule
// applied to the whole string.
func MaskN(key string, visibleChars int) (string, error) {
	if visibleChars < 0 {
		return "", ErrInvalidVisibleChars
	}
	if key == "" {
		return "", nil
	}
	prefix := prefixFor(environmentOf(key))
	secret := []rune(key[len(prefix):])
	if visibleChars >= len(secret) {
		visibleChars = 0
	}
	masked := make([]rune, len(secret))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(secret)-visibleChars:], secret[len(secret)-visibleChars:])
	return prefix + string(masked), nil
}

// Info is a safe-to-log description of a key string. All fields are
// derived from the input on each call; none expose the secret.
type Info struct {
	IsValid     bool        `json:"is_valid"`
	Length      int         `json:"length"`
	Masked      string      `json:"masked"`
	Environment Environment `json:"environment"`
	Type        string      `json:"type"`
	Prefix      string      `json:"prefix,omitempty"`
}

// GetInfo describes an arbitrary key string without exposing its secret.
// It never fails: malformed input yields IsValid false with best-effort
// remaining fields, which makes it safe for audit logging of untrusted
// strings.
func GetInfo(key string) Info {
	info := Info{
		IsValid:     IsValidFormat(key),
		Length:      utf8.RuneCountInString(key),
		Masked:      Mask(key),
		Environment: environmentOf(key),
		Type:        TypeInvalid,
	}
	if info.IsValid {
		info.Type = TypeSecretKey
		info.Prefix = prefixFor(info.Environment)
	}
	return info
}
