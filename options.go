package bugbounty

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	verifySSL  bool
	retries    int
	retryOn    []int
	limiter    *rate.Limiter
	logger     *zerolog.Logger
}

// publishConfig holds configuration for publishing an article.
type publishConfig struct {
	frontmatter Frontmatter
	filePath    string
	images      map[string][]byte
}

// Option configures the client.
type Option func(*clientConfig)

// PublishOption configures article publishing.
type PublishOption func(*publishConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. When set, WithTimeout and
// WithVerifySSL have no effect.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithVerifySSL controls TLS certificate verification. Disabling it is
// meant for self-hosted platform instances with self-signed certificates.
func WithVerifySSL(verify bool) Option {
	return func(c *clientConfig) {
		c.verifySSL = verify
	}
}

// WithRetries enables automatic retries for transient failures, with up to
// count retry attempts. Retries are off by default: publishing is not
// idempotent, and a blind retry on an ambiguous failure could create
// duplicate articles.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithRateLimiter throttles outgoing requests client-side. Useful to stay
// under the platform's quota when publishing in bulk.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *clientConfig) {
		c.limiter = limiter
	}
}

// WithLogger enables request-level debug logging. Log lines carry method,
// path, status and duration; the API key never appears in them.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = &logger
	}
}

// WithFrontmatter attaches structured metadata to the published article.
func WithFrontmatter(frontmatter Frontmatter) PublishOption {
	return func(c *publishConfig) {
		c.frontmatter = frontmatter
	}
}

// WithFilePath records the source file path the article was published from,
// used by the platform for tracking republishes.
func WithFilePath(path string) PublishOption {
	return func(c *publishConfig) {
		c.filePath = path
	}
}

// WithImages attaches images to the publish, keyed by filename. The article
// content references them by those filenames.
func WithImages(images map[string][]byte) PublishOption {
	return func(c *publishConfig) {
		c.images = images
	}
}
