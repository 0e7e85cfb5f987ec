package asimplevectors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigEndpoint(t *testing.T) {
	assert.Equal(t, "http://localhost:21001", DefaultConfig().Endpoint())

	cfg := DefaultConfig().WithTLS(true)
	cfg.Host = "vectors.internal"
	cfg.Port = 8443
	assert.Equal(t, "https://vectors.internal:8443", cfg.Endpoint())

	cfg.Host = "::1"
	assert.Equal(t, "https://[::1]:8443", cfg.Endpoint())

	assert.Equal(t, "https://example.com/base", FromEndpoint("https://example.com/base/").Endpoint())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"base url", FromEndpoint("http://127.0.0.1:9000"), false},
		{"bad scheme", FromEndpoint("ftp://host"), true},
		{"no host", FromEndpoint("http://"), true},
		{"empty host", &Config{Port: 1}, true},
		{"port range", &Config{Host: "h", Port: 70000}, true},
		{"negative timeout", DefaultConfig().WithTimeout(-time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("ASV_HOST", "db.local")
	t.Setenv("ASV_PORT", "22001")
	t.Setenv("ASV_USE_SSL", "true")
	t.Setenv("ASV_TOKEN", "secret")
	t.Setenv("ASV_TIMEOUT", "5s")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://db.local:22001", cfg.Endpoint())
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	t.Setenv("ASV_PORT", "abc")
	_, err = NewConfigFromEnv()
	assert.Error(t, err)
}

func TestConfigTokenIsApplied(t *testing.T) {
	c, err := NewClient(DefaultConfig().WithToken("initial"))
	require.NoError(t, err)
	assert.Equal(t, "initial", c.Auth().Token())

	c.SetToken("")
	assert.Equal(t, "", c.Auth().Token())
}
