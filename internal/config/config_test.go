package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "https://gutendex.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.False(t, cfg.Session.DiscardStale)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, time.Minute, cfg.Session.SweepInterval)
	assert.Empty(t, cfg.Session.LanguageNamesFile)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("CATALOG_BASE_URL", "http://localhost:8000")
	t.Setenv("CATALOG_TIMEOUT", "5s")
	t.Setenv("SESSION_DISCARD_STALE", "true")
	t.Setenv("LANGUAGE_NAMES_FILE", "/etc/bookexplorer/languages.yaml")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8000", cfg.Catalog.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.True(t, cfg.Session.DiscardStale)
	assert.Equal(t, "/etc/bookexplorer/languages.yaml", cfg.Session.LanguageNamesFile)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"LOG_LEVEL":              "verbose",
		"CATALOG_BASE_URL":       "gutendex",
		"SESSION_IDLE_TTL":       "10ms",
		"CATALOG_TIMEOUT":        "soon",
		"SESSION_SWEEP_INTERVAL": "0s",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestParseAcceptsEveryLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error"} {
		t.Run(level, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", level)
			cfg, err := Parse()
			require.NoError(t, err)
			assert.Equal(t, level, cfg.LogLevel)
		})
	}
}
