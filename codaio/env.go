package codaio

import (
	"strings"

	"github.com/spf13/viper"
)

// Environment variables read by FromEnvironment.
const (
	EnvAPIKey      = "CODA_API_KEY"
	EnvAPIEndpoint = "CODA_API_ENDPOINT"
)

// FromEnvironment reads the API token from CODA_API_KEY and the API root
// from CODA_API_ENDPOINT. Unset variables leave the current values alone,
// so options applied later still win.
func FromEnvironment() Option {
	return func(c *Config) {
		v := viper.New()
		_ = v.BindEnv("api_key", EnvAPIKey)
		_ = v.BindEnv("api_endpoint", EnvAPIEndpoint)

		if key := strings.TrimSpace(v.GetString("api_key")); key != "" {
			c.APIKey = key
		}
		if endpoint := strings.TrimSpace(v.GetString("api_endpoint")); endpoint != "" {
			c.BaseURL = strings.TrimSuffix(endpoint, "/")
		}
	}
}

// NewClientFromEnvironment creates a client configured from the
// environment, then from opts. It fails with ErrNoAPIKey when no token is
// found.
func NewClientFromEnvironment(opts ...Option) (*Client, error) {
	return NewClient(append([]Option{FromEnvironment()}, opts...)...)
}
