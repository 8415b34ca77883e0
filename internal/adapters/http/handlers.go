// SPDX-License-Identifier: AGPL-3.0-or-later

// Package http provides HTTP handlers that delegate to the badge pipeline
// and its collaborating services.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/paybadge/paybadge/internal/domain"
	"github.com/paybadge/paybadge/internal/services/embedcode"
	"github.com/paybadge/paybadge/internal/services/presets"
)

// RateSource supplies current exchange rates.
type RateSource interface {
	GetCurrentRate(ctx context.Context, crypto, fiat string) (float64, error)
}

// RenderRecorder persists render analytics. A nil recorder disables them.
type RenderRecorder interface {
	Record(ctx context.Context, ev domain.RenderEvent) error
	Stats(ctx context.Context) (domain.RenderStats, error)
}

// Handlers holds HTTP handlers and their dependencies.
type Handlers struct {
	rates    RateSource
	presets  *presets.Service
	recorder RenderRecorder
	baseURL  string
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers with the given services.
func NewHandlers(rates RateSource, presetSvc *presets.Service, recorder RenderRecorder, baseURL string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		rates:    rates,
		presets:  presetSvc,
		recorder: recorder,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders the JSON error body the API contract promises.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Healthcheck returns a simple health status.
func (h *Handlers) Healthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Rate handles exchange-rate lookups.
// GET /api/v1/rate?crypto=btc&fiat=usd
func (h *Handlers) Rate(w http.ResponseWriter, r *http.Request) {
	crypto := r.URL.Query().Get("crypto")
	fiat := r.URL.Query().Get("fiat")
	if crypto == "" {
		crypto = "btc"
	}
	if fiat == "" {
		fiat = "usd"
	}

	rate, err := h.rates.GetCurrentRate(r.Context(), crypto, fiat)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCurrency):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, domain.ErrRateUnavailable):
			h.logger.Warn("rate lookup failed", "crypto", crypto, "fiat", fiat, "error", err)
			writeError(w, http.StatusBadGateway, err)
		default:
			h.logger.Error("rate lookup failed", "crypto", crypto, "fiat", fiat, "error", err)
			writeError(w, http.StatusBadGateway, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"crypto": crypto,
		"fiat":   fiat,
		"rate":   rate,
	})
}

// presetResponse is the JSON shape for one preset with its embed snippets.
type presetResponse struct {
	presets.Preset
	BadgeURL string              `json:"badgeUrl"`
	Embed    embedcode.EmbedCode `json:"embed"`
}

// Presets lists configured payment presets with ready-to-paste embed code.
// GET /api/v1/presets
func (h *Handlers) Presets(w http.ResponseWriter, r *http.Request) {
	list := h.presets.List()

	response := make([]presetResponse, 0, len(list))
	for _, p := range list {
		response = append(response, presetResponse{
			Preset:   p,
			BadgeURL: p.BadgeURL(h.baseURL),
			Embed:    p.Embed(h.baseURL),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// AdminStats reports aggregated render analytics.
// GET /api/v1/admin/stats
func (h *Handlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	if h.recorder == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("render analytics disabled"))
		return
	}

	stats, err := h.recorder.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to get render stats", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_renders": stats.TotalRenders,
		"by_style":      stats.ByStyle,
	})
}
