package bugbounty

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// envConfig is the environment-variable surface of the client.
type envConfig struct {
	APIKey    string `env:"BUGBOUNTY_API_KEY"`
	APIURL    string `env:"BUGBOUNTY_API_URL"`
	VerifySSL bool   `env:"BUGBOUNTY_VERIFY_SSL" envDefault:"true"`
	Timeout   int    `env:"BUGBOUNTY_TIMEOUT" envDefault:"30"`
}

// NewFromEnv creates a client configured from BUGBOUNTY_* environment
// variables:
//
//	BUGBOUNTY_API_KEY     API key (required)
//	BUGBOUNTY_API_URL     base URL (default: production)
//	BUGBOUNTY_VERIFY_SSL  verify TLS certificates (default: true)
//	BUGBOUNTY_TIMEOUT     per-request timeout in seconds (default: 30)
//
// Explicit options take precedence over the environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	envOpts := []Option{
		WithVerifySSL(cfg.VerifySSL),
		WithTimeout(time.Duration(cfg.Timeout) * time.Second),
	}
	if cfg.APIURL != "" {
		envOpts = append(envOpts, WithBaseURL(cfg.APIURL))
	}

	return New(cfg.APIKey, append(envOpts, opts...)...)
}
