// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitRouteConfig holds limits for one route class.
type RateLimitRouteConfig struct {
	Requests int
	Period   time.Duration
	Burst    int
}

// RateLimitConfig holds all rate limiting configuration.
type RateLimitConfig struct {
	Enabled         bool
	CleanupInterval time.Duration

	Badge RateLimitRouteConfig
	Rates RateLimitRouteConfig
	Admin RateLimitRouteConfig
}

// Config is the full service configuration.
type Config struct {
	Port          string
	BaseURL       string // External URL used in generated embed snippets
	AllowedOrigin string // CORS Access-Control-Allow-Origin value

	DatabaseURL string // Optional; enables render analytics when set
	PresetsFile string // Optional YAML preset file

	RatesBaseURL string
	RatesTTL     time.Duration

	RateLimit RateLimitConfig
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() Config {
	port := getEnvString("PORT", "8080")
	return Config{
		Port:          port,
		BaseURL:       getEnvString("PAYBADGE_BASE_URL", "http://localhost:"+port),
		AllowedOrigin: getEnvString("PAYBADGE_ALLOWED_ORIGIN", "*"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		PresetsFile: os.Getenv("PAYBADGE_PRESETS_FILE"),

		RatesBaseURL: os.Getenv("PAYBADGE_RATES_BASE_URL"),
		RatesTTL:     getEnvDuration("PAYBADGE_RATES_TTL", time.Minute),

		RateLimit: LoadRateLimitConfig(),
	}
}

// LoadRateLimitConfig loads rate limiting configuration from environment
// variables.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:         getEnvBool("PAYBADGE_RATELIMIT_ENABLED", true),
		CleanupInterval: getEnvDuration("PAYBADGE_RATELIMIT_CLEANUP_INTERVAL", 10*time.Minute),

		Badge: RateLimitRouteConfig{
			Requests: getEnvInt("PAYBADGE_RATELIMIT_BADGE_REQUESTS", 120),
			Period:   getEnvDuration("PAYBADGE_RATELIMIT_BADGE_PERIOD", time.Minute),
			Burst:    getEnvInt("PAYBADGE_RATELIMIT_BADGE_BURST", 30),
		},
		Rates: RateLimitRouteConfig{
			Requests: getEnvInt("PAYBADGE_RATELIMIT_RATES_REQUESTS", 30),
			Period:   getEnvDuration("PAYBADGE_RATELIMIT_RATES_PERIOD", time.Minute),
			Burst:    getEnvInt("PAYBADGE_RATELIMIT_RATES_BURST", 10),
		},
		Admin: RateLimitRouteConfig{
			Requests: getEnvInt("PAYBADGE_RATELIMIT_ADMIN_REQUESTS", 60),
			Period:   getEnvDuration("PAYBADGE_RATELIMIT_ADMIN_PERIOD", time.Minute),
			Burst:    getEnvInt("PAYBADGE_RATELIMIT_ADMIN_BURST", 20),
		},
	}
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
