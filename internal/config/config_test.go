package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"COLLECTOR_MODE", "REDDIT_BASE_URL", "REDDIT_USER_AGENT", "REDDIT_MIN_INTERVAL",
		"HTTP_TIMEOUT", "DATA_DIR", "FAVORITES_KEY", "HYDRATE_CONCURRENCY", "PORT", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	c := FromEnv()

	assert.Equal(t, "public", c.CollectorMode)
	assert.Equal(t, "https://www.reddit.com", c.BaseURL)
	assert.Equal(t, time.Duration(0), c.MinInterval)
	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
	assert.Equal(t, "favorites", c.FavoritesKey)
	assert.Equal(t, 8, c.HydrateConcurrency)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("COLLECTOR_MODE", "mock")
	t.Setenv("REDDIT_BASE_URL", "http://localhost:9999/")
	t.Setenv("REDDIT_MIN_INTERVAL", "2s")
	t.Setenv("HYDRATE_CONCURRENCY", "3")
	t.Setenv("LOG_LEVEL", "debug")

	c := FromEnv()

	assert.Equal(t, "mock", c.CollectorMode)
	assert.Equal(t, "http://localhost:9999", c.BaseURL)
	assert.Equal(t, 2*time.Second, c.MinInterval)
	assert.Equal(t, 3, c.HydrateConcurrency)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("HYDRATE_CONCURRENCY", "many")
	t.Setenv("LOG_LEVEL", "loud")

	c := FromEnv()

	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
	assert.Equal(t, 8, c.HydrateConcurrency)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
}
