package asimplevectors

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default values for configuration
const (
	DefaultHost      = "localhost"
	DefaultPort      = 21001
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "asimplevectors-go"
)

// Config holds connection settings for the asimplevectors client.
//
// Example (programmatic):
//
//	cfg := asimplevectors.DefaultConfig()
//	cfg.Host = "vectors.internal"
//	cfg.Token = os.Getenv("ASV_TOKEN")
//
// Example (builder style):
//
//	cfg := asimplevectors.FromEndpoint("https://vectors.example.com").
//	    WithToken(token).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Host of the asimplevectors server, e.g. "localhost".
	Host string `yaml:"host" env:"ASV_HOST"`

	// HTTP port of the server. Defaults to 21001.
	Port int `yaml:"port" env:"ASV_PORT"`

	// UseSSL selects https when the URL is built from Host and Port.
	UseSSL bool `yaml:"use_ssl" env:"ASV_USE_SSL"`

	// BaseURL overrides Host, Port and UseSSL when set,
	// e.g. "https://vectors.example.com:8443".
	BaseURL string `yaml:"base_url" env:"ASV_BASE_URL"`

	// Token is the initial bearer token. It can be replaced at any time
	// with Client.SetToken.
	Token string `yaml:"token" env:"ASV_TOKEN"`

	// Timeout bounds every request including snapshot transfers. Zero
	// disables the client-side timeout; contexts still apply.
	Timeout time.Duration `yaml:"timeout" env:"ASV_TIMEOUT"`

	// UserAgent sent with each request.
	UserAgent string `yaml:"user_agent" env:"ASV_USER_AGENT"`
}

// DefaultConfig returns a config pointing at http://localhost:21001.
func DefaultConfig() *Config {
	return &Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// FromEndpoint returns a default config using endpoint as BaseURL.
func FromEndpoint(endpoint string) *Config {
	cfg := DefaultConfig()
	cfg.BaseURL = endpoint
	return cfg
}

// WithToken sets the bearer token and returns c for chaining.
func (c *Config) WithToken(token string) *Config {
	c.Token = token
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

// WithTLS switches the derived base URL to https.
func (c *Config) WithTLS(enabled bool) *Config {
	c.UseSSL = enabled
	return c
}

// NewConfigFromEnv starts from DefaultConfig and applies the ASV_* variables
// that are set.
func NewConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("ASV_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("ASV_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ASV_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("ASV_USE_SSL"); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ASV_USE_SSL %q: %w", v, err)
		}
		cfg.UseSSL = useSSL
	}
	if v := os.Getenv("ASV_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("ASV_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("ASV_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ASV_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = timeout
	}
	if v := os.Getenv("ASV_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}

	return cfg, cfg.Validate()
}

// Validate checks that the config describes a reachable endpoint.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base url %q: scheme must be http or https", c.BaseURL)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid base url %q: missing host", c.BaseURL)
		}
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// Endpoint returns the base URL requests are sent to, without a trailing
// slash.
func (c *Config) Endpoint() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
