// SPDX-License-Identifier: AGPL-3.0-or-later

package http

import (
	"log/slog"
	"net/http"

	"github.com/paybadge/paybadge/internal/middleware"
	"github.com/paybadge/paybadge/internal/services/presets"
	"github.com/paybadge/paybadge/web"
)

// RouterConfig holds the configuration for creating a new router.
type RouterConfig struct {
	Rates         RateSource
	Presets       *presets.Service
	Recorder      RenderRecorder // nil disables analytics
	RateLimiter   *middleware.RateLimiter
	BaseURL       string
	AllowedOrigin string
	Logger        *slog.Logger
}

// NewRouter creates a fully wired HTTP handler with all routes, rate
// limiting and CORS applied.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handlers := NewHandlers(cfg.Rates, cfg.Presets, cfg.Recorder, cfg.BaseURL, logger)

	mux := http.NewServeMux()

	// Health check (no rate limit)
	mux.HandleFunc("/api/v1/healthcheck", handlers.Healthcheck)

	rl := cfg.RateLimiter
	if rl != nil {
		mux.HandleFunc("/badge.svg", rl.BadgeMiddleware(handlers.BadgeStandard))
		mux.HandleFunc("/badge-crypto.svg", rl.BadgeMiddleware(handlers.BadgeEnhanced))
		mux.HandleFunc("/api/v1/rate", rl.RatesMiddleware(handlers.Rate))
		mux.HandleFunc("/api/v1/presets", rl.BadgeMiddleware(handlers.Presets))
		mux.HandleFunc("/api/v1/admin/stats", rl.AdminMiddleware(handlers.AdminStats))
	} else {
		// No rate limiting (for testing)
		mux.HandleFunc("/badge.svg", handlers.BadgeStandard)
		mux.HandleFunc("/badge-crypto.svg", handlers.BadgeEnhanced)
		mux.HandleFunc("/api/v1/rate", handlers.Rate)
		mux.HandleFunc("/api/v1/presets", handlers.Presets)
		mux.HandleFunc("/api/v1/admin/stats", handlers.AdminStats)
	}

	mux.Handle("/", http.FileServer(http.FS(web.Assets)))

	return CORS(cfg.AllowedOrigin, mux)
}
