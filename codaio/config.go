package codaio

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/blasterai/codaio-go/internal/poll"
	"github.com/blasterai/codaio-go/internal/version"
)

// Default configuration values
const (
	DefaultBaseURL = "https://coda.io/apis/v1"
	DefaultTimeout = 30 * time.Second
)

// Logger is the interface for debug logging. hclog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
}

// LoggerFunc is a function adapter for Logger.
type LoggerFunc func(msg string, keysAndValues ...any)

// Debug implements Logger.
func (f LoggerFunc) Debug(msg string, keysAndValues ...any) {
	f(msg, keysAndValues...)
}

// RateLimitConfig throttles requests on the client side. A zero
// RequestsPerSecond disables throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Validate implements validation.Validatable.
func (r RateLimitConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RequestsPerSecond, validation.Min(0.0)),
		validation.Field(&r.Burst, validation.Min(0)),
	)
}

// PollPolicy bounds the wait performed by Cell.SetValue until a write is
// visible on read.
type PollPolicy struct {
	// Interval is the fixed wait between two reads.
	Interval time.Duration
	// MaxAttempts is the total number of reads before giving up.
	MaxAttempts int
}

// DefaultPollPolicy returns 100 reads spaced 300ms apart.
func DefaultPollPolicy() PollPolicy {
	p := poll.DefaultPolicy()
	return PollPolicy{Interval: p.Interval, MaxAttempts: p.MaxAttempts}
}

// Validate implements validation.Validatable.
func (p PollPolicy) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Interval, validation.Min(time.Duration(0))),
		validation.Field(&p.MaxAttempts, validation.Min(0)),
	)
}

// Config holds the SDK configuration.
type Config struct {
	// APIKey is the Coda API token sent as a bearer token.
	APIKey string
	// BaseURL is the versioned API root.
	BaseURL string
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// HTTPClient replaces the default http.Client when set.
	HTTPClient *http.Client
	// Headers are additional headers to include in all requests.
	Headers map[string]string
	// UserAgent is the custom user agent string.
	UserAgent string
	// Logger is the debug logger.
	Logger Logger
	// RateLimit throttles outgoing requests.
	RateLimit RateLimitConfig
	// Poll bounds the consistency loop of cell writes.
	Poll PollPolicy
}

// Validate checks the configuration. A missing API key is reported as
// ErrNoAPIKey.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrNoAPIKey
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(absoluteHTTPURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.RateLimit),
		validation.Field(&c.Poll),
	)
}

func absoluteHTTPURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithAPIKey sets the API token.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets the API root, e.g. for a proxy or a test server.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = strings.TrimSuffix(url, "/")
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithHTTPClient sets the http.Client used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = hc
	}
}

// WithHeaders sets additional headers for all requests.
func WithHeaders(headers map[string]string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		for k, v := range headers {
			c.Headers[k] = v
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithLogger sets the debug logger.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithDebug enables debug logging to stderr.
func WithDebug(enabled bool) Option {
	return func(c *Config) {
		if enabled {
			c.Logger = hclog.New(&hclog.LoggerOptions{
				Name:   "codaio",
				Level:  hclog.Debug,
				Output: os.Stderr,
			})
		}
	}
}

// WithRateLimit throttles requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Config) {
		c.RateLimit = RateLimitConfig{RequestsPerSecond: rps, Burst: burst}
	}
}

// WithPollPolicy sets how long Cell.SetValue waits for a write to show up.
// Zero fields keep their defaults.
func WithPollPolicy(p PollPolicy) Option {
	return func(c *Config) {
		if p.Interval > 0 {
			c.Poll.Interval = p.Interval
		}
		if p.MaxAttempts > 0 {
			c.Poll.MaxAttempts = p.MaxAttempts
		}
	}
}

// newDefaultConfig creates a new config with default values.
func newDefaultConfig() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		Headers:   make(map[string]string),
		UserAgent: version.UserAgent(),
		Poll:      DefaultPollPolicy(),
	}
}

// resolveConfig applies options in order.
func resolveConfig(opts ...Option) *Config {
	cfg := newDefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
