package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/bugbounty-ksp/client-go/apikey"
	"github.com/bugbounty-ksp/client-go/internal/apierrors"
)

// Defaults for client construction.
const (
	DefaultBaseURL   = "https://api.bugbounty-ksp.com"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "BugBountyKSP-SDK-Go/1.0"

	// VerifyTimeout bounds the auth verification probe so misconfigured
	// keys fail fast.
	VerifyTimeout = 5 * time.Second
)

// Config configures the API client.
type Config struct {
	// BaseURL is the root of the API. A trailing slash is stripped.
	BaseURL string

	// APIKey is sent as a bearer token on every request.
	APIKey string

	// UserAgent overrides the default User-Agent header when non-empty.
	UserAgent string

	// HTTPClient overrides the default HTTP client. When set, Timeout is
	// ignored.
	HTTPClient *http.Client

	// Timeout applies to each request when HTTPClient is nil. Zero means
	// DefaultTimeout.
	Timeout time.Duration

	// Retry enables automatic retries for transient failures. Nil leaves
	// retries off: publishing is not idempotent, so retries are strictly
	// opt-in.
	Retry *RetryConfig

	// Limiter throttles outgoing requests client-side when set.
	Limiter *rate.Limiter

	// Logger receives request-level debug logging. Nil disables logging.
	Logger *zerolog.Logger
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	retry      *RetryConfig
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates an API client from explicit configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if u, err := url.Parse(cfg.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		userAgent:  userAgent,
		httpClient: httpClient,
		retry:      cfg.Retry,
		limiter:    cfg.Limiter,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// CloseIdleConnections releases idle connections held by the underlying
// transport.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// FilePart is a single file attachment for a multipart request.
type FilePart struct {
	FieldName string
	FileName  string
	Data      []byte
}

// Do performs a JSON request against path and decodes a 2xx response body
// into result when result is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}
	return c.send(ctx, method, path, "application/json", payload, result)
}

// DoMultipart performs a multipart/form-data request carrying fields and
// file parts. Used for publishes with image uploads.
func (c *Client) DoMultipart(ctx context.Context, method, path string, fields map[string]string, files []FilePart, result interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %q: %w", name, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return fmt.Errorf("failed to create form file %q: %w", f.FileName, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write form file %q: %w", f.FileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return c.send(ctx, method, path, w.FormDataContentType(), buf.Bytes(), result)
}

// send runs the request loop: rate limiting, one attempt per iteration with
// a freshly built body, and opt-in retries for transient failures.
func (c *Client) send(ctx context.Context, method, path, contentType string, payload []byte, result interface{}) error {
	reqURL := c.baseURL + path

	attempts := 1
	if c.retry != nil {
		attempts += c.retry.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return &apierrors.NetworkError{Err: err, URL: reqURL, Attempt: attempt + 1}
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		if payload != nil {
			req.Header.Set("Content-Type", contentType)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &apierrors.NetworkError{Err: err, URL: reqURL, Attempt: attempt + 1}
			c.logger.Debug().
				Err(err).
				Str("method", method).
				Str("path", path).
				Int("attempt", attempt+1).
				Msg("request failed")
			if attempt+1 >= attempts {
				return lastErr
			}
			if werr := c.retry.Wait(ctx, attempt); werr != nil {
				return &apierrors.NetworkError{Err: werr, URL: reqURL, Attempt: attempt + 1}
			}
			continue
		}

		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("request completed")

		if resp.StatusCode < 400 {
			return decodeResult(resp, result)
		}

		apiErr := c.classifyError(resp)
		if c.retry == nil || !c.retry.ShouldRetry(attempt, resp.StatusCode) {
			return apiErr
		}
		lastErr = apiErr

		delay := c.retry.Delay(attempt)
		if hint := retryAfterHint(apiErr); hint > 0 {
			delay = hint
		}
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Int("attempt", attempt+1).
			Dur("retry_delay", delay).
			Str("path", path).
			Msg("retrying request")
		if werr := sleepContext(ctx, delay); werr != nil {
			return &apierrors.NetworkError{Err: werr, URL: reqURL, Attempt: attempt + 1}
		}
	}

	return lastErr
}

// classifyError turns a non-2xx response into the matching typed error.
// Bodies of the form {"error": ...} or {"message": ...} contribute the
// message; anything else is used verbatim.
func (c *Client) classifyError(resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	message := fmt.Sprintf("HTTP %d", resp.StatusCode)
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && (errResp.Error != "" || errResp.Message != "") {
		if errResp.Error != "" {
			message = errResp.Error
		} else {
			message = errResp.Message
		}
	} else if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
		message = string(trimmed)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &apierrors.AuthenticationError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Unauthorized: %s. Check your API key.", message),
			MaskedKey:  apikey.Mask(c.apiKey),
		}
	case http.StatusForbidden:
		return &apierrors.AuthenticationError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Forbidden: %s. Check your permissions.", message),
			MaskedKey:  apikey.Mask(c.apiKey),
		}
	case http.StatusNotFound:
		return &apierrors.NotFoundError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Not found: %s", message),
		}
	case http.StatusTooManyRequests:
		return &apierrors.RateLimitError{
			StatusCode: resp.StatusCode,
			Message:    "Rate limit exceeded. Please try again later.",
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	default:
		return &apierrors.APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
			RequestID:  resp.Header.Get("X-Request-Id"),
		}
	}
}

func decodeResult(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &apierrors.APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to decode response: %v", err),
		}
	}
	return nil
}

// parseRetryAfter reads a Retry-After header value as whole seconds.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func retryAfterHint(err error) time.Duration {
	var rlErr *apierrors.RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr.RetryAfter
	}
	return 0
}
