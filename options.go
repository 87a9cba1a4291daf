package soundboard

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to
// discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/soundbored/soundbored-go/internal/types"
	"github.com/soundbored/soundbored-go/state"
)

// Option configures a Client during construction in New.
//
// Options are applied before the token transport wrapper is installed, so
// transport-related options (like debug logging) sit underneath it.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net bounding the total time of a single HTTP request. It
// must be greater than zero. Note that it also bounds the lifetime of an
// event stream response, so clients that subscribe to events should
// either raise it or supply their own http.Client without a timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client, e.g. to carry a
// cookie jar for session authentication.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithAuthToken authenticates every request with the given automation
// token as a bearer Authorization header.
func WithAuthToken(token string) Option {
	return func(c *Client) error {
		c.token = token
		return nil
	}
}

// WithReadRetryAttempts bounds the automatic retry of idempotent reads to
// n total tries. Mutations are never retried regardless of this setting.
func WithReadRetryAttempts(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return fmt.Errorf("read retry attempts must be > 0")
		}
		c.readAttempts = n
		return nil
	}
}

// WithUserContainer registers the container holding the current user so
// the client can clear it on logout and on session expiry.
func WithUserContainer(u *state.Container[types.User]) Option {
	return func(c *Client) error {
		c.user = u
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response
// is dumped to the log when enabled is true. Not for production use; the
// dumps include auth headers.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			base := c.http.Transport
			if base == nil {
				base = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: base}
		}
		return nil
	}
}

// EnvConfig carries environment-driven client settings, mainly for CLI
// and scripting use.
type EnvConfig struct {
	BaseURL      string        `envconfig:"SOUNDBOARD_BASE_URL" default:"http://localhost:8000"`
	Token        string        `envconfig:"SOUNDBOARD_TOKEN"`
	GuildID      string        `envconfig:"SOUNDBOARD_GUILD_ID"`
	HTTPTimeout  time.Duration `envconfig:"SOUNDBOARD_HTTP_TIMEOUT" default:"30s"`
	ReadAttempts int           `envconfig:"SOUNDBOARD_READ_ATTEMPTS" default:"5"`
}

// LoadEnvConfig reads client settings from the environment.
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}

// NewFromEnv constructs a Client from environment configuration plus any
// extra options.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadEnvConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithHTTPTimeout(cfg.HTTPTimeout),
		WithReadRetryAttempts(cfg.ReadAttempts),
	}
	if cfg.Token != "" {
		base = append(base, WithAuthToken(cfg.Token))
	}
	return New(cfg.BaseURL, append(base, opts...)...), nil
}
