package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RATE_API_BASE_URL", "https://rates.example.com/")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SMTP_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://rates.example.com", cfg.GetRateAPIBaseURL())
	assert.Equal(t, 24*time.Hour, cfg.GetSessionTTL())
	assert.Equal(t, 20.0, cfg.GetSubmitRatePerMinute())
	assert.False(t, cfg.IsSchedulerEnabled())
	assert.False(t, cfg.GetEmailEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RATE_API_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PHONE_DEFAULT_REGION", "nl")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CORS_ALLOW_ALL", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.GetRateAPITimeout())
	assert.Equal(t, 2*time.Hour, cfg.GetSessionTTL())
	assert.True(t, cfg.IsSchedulerEnabled())
	assert.Equal(t, "NL", cfg.GetPhoneDefaultRegion())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.GetCORSOrigins())
	assert.False(t, cfg.GetCORSAllowAll())
}

func TestLoadRejectsInvalidCombinations(t *testing.T) {
	cases := map[string]map[string]string{
		"bad timeout":          {"RATE_API_TIMEOUT": "soon"},
		"zero ttl":             {"SESSION_TTL": "0s"},
		"smtp without from":    {"SMTP_HOST": "smtp.example.com", "EMAIL_FROM_ADDRESS": ""},
		"wildcard credentials": {"CORS_ORIGINS": "*", "CORS_ALLOW_CREDENTIALS": "true"},
		"no burst":             {"SUBMIT_RATE_BURST": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
