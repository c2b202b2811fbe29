package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Upstream
	CollectorMode string        // "public", "api" or "mock"
	BaseURL       string        // e.g. https://www.reddit.com
	UserAgent     string        // required by Reddit for every mode but mock
	MinInterval   time.Duration // 0 disables throttling
	HTTPTimeout   time.Duration

	// Credentials for api mode
	ClientID     string
	ClientSecret string
	Username     string
	Password     string

	// Favorites
	DataDir            string // diskv base path
	FavoritesKey       string // slot name
	HydrateConcurrency int

	// View
	Port     string
	LogLevel slog.Level
}

// Load reads .env (when present) into the environment and then builds a Config.
func Load() Config {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	c := Config{}

	c.CollectorMode = getenv("COLLECTOR_MODE", "public")
	c.BaseURL = strings.TrimRight(getenv("REDDIT_BASE_URL", "https://www.reddit.com"), "/")
	c.UserAgent = getenv("REDDIT_USER_AGENT", "hotfavs/1.0")
	c.MinInterval = getenvd("REDDIT_MIN_INTERVAL", 0)
	c.HTTPTimeout = getenvd("HTTP_TIMEOUT", 10*time.Second)

	c.ClientID = os.Getenv("REDDIT_CLIENT_ID")
	c.ClientSecret = os.Getenv("REDDIT_CLIENT_SECRET")
	c.Username = os.Getenv("REDDIT_USERNAME")
	c.Password = os.Getenv("REDDIT_PASSWORD")

	c.DataDir = getenv("DATA_DIR", "data")
	c.FavoritesKey = getenv("FAVORITES_KEY", "favorites")
	c.HydrateConcurrency = getenvi("HYDRATE_CONCURRENCY", 8)

	c.Port = getenv("PORT", "8080")
	c.LogLevel = parseLevel(getenv("LOG_LEVEL", "info"))

	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			return iv
		}
	}
	return def
}

func getenvd(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
