package bugbounty

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"sync"

	"github.com/bugbounty-ksp/client-go/apikey"
	"github.com/bugbounty-ksp/client-go/internal/api"
)

// Client is the main BugBountyKE-KSP client for publishing articles.
//
// The API key is verified lazily: the first operation that needs it issues
// an authentication probe, and a failed probe leaves the client unverified
// so the next operation probes again. Construction never touches the
// network.
type Client struct {
	apiClient *api.Client
	apiKey    string

	mu       sync.RWMutex
	verified bool
	closed   bool
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig) (*api.Client, error) {
	timeout := cfg.timeout
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}

	httpClient := cfg.httpClient
	if httpClient == nil && !cfg.verifySSL {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}

	var retry *api.RetryConfig
	if cfg.retries > 0 {
		retry = api.DefaultRetryConfig()
		retry.MaxRetries = cfg.retries
		if len(cfg.retryOn) > 0 {
			codes := make(map[int]struct{}, len(cfg.retryOn))
			for _, code := range cfg.retryOn {
				codes[code] = struct{}{}
			}
			retry.RetryableOn = func(statusCode int) bool {
				_, ok := codes[statusCode]
				return ok
			}
		}
	}

	return api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     apiKey,
		HTTPClient: httpClient,
		Timeout:    timeout,
		Retry:      retry,
		Limiter:    cfg.limiter,
		Logger:     cfg.logger,
	})
}

// New creates a new BugBountyKE-KSP client with the given API key.
//
// The key is only checked for presence here; it is verified against the
// platform on first use. Use VerifyAuthentication to fail fast instead.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL:   api.DefaultBaseURL,
		verifySSL: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(apiKey, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient: apiClient,
		apiKey:    apiKey,
	}, nil
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// ensureVerified runs the authentication probe if it has not succeeded yet.
// Keys that fail the local format check are rejected without spending a
// round trip.
func (c *Client) ensureVerified(ctx context.Context) error {
	c.mu.RLock()
	verified := c.verified
	c.mu.RUnlock()
	if verified {
		return nil
	}

	if !apikey.IsValidFormat(c.apiKey) {
		return &AuthenticationError{
			Message:   "Invalid API key format. Must start with 'sk_' or 'sk_test_'.",
			MaskedKey: apikey.Mask(c.apiKey),
		}
	}

	if err := c.apiClient.VerifyAuth(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.verified = true
	c.mu.Unlock()
	return nil
}

// unverify drops the verified flag when the platform rejects the key
// mid-session, so the next operation re-probes instead of assuming the key
// is still good.
func (c *Client) unverify(err error) error {
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		c.mu.Lock()
		c.verified = false
		c.mu.Unlock()
	}
	return err
}

// VerifyAuthentication probes the platform with the configured API key.
// Operations verify lazily on first use; calling this explicitly is only
// needed to fail fast, or to force a re-check after the key was rotated.
func (c *Client) VerifyAuthentication(ctx context.Context) error {
	if err := c.checkClosed(); err != nil {
		return err
	}

	c.mu.Lock()
	c.verified = false
	c.mu.Unlock()

	return c.ensureVerified(ctx)
}

// Verified reports whether the API key has passed the authentication probe.
func (c *Client) Verified() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.verified
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// Close closes the client and releases idle connections. Operations on a
// closed client return ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.apiClient.CloseIdleConnections()
	return nil
}
