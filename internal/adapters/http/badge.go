// SPDX-License-Identifier: AGPL-3.0-or-later

package http

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/paybadge/paybadge/internal/domain"
	"github.com/paybadge/paybadge/internal/services/badge"
)

// BadgeStandard serves the standard badge.
// GET /badge.svg
func (h *Handlers) BadgeStandard(w http.ResponseWriter, r *http.Request) {
	h.serveBadge(w, r, string(badge.StyleStandard), badge.GenerateStandard)
}

// BadgeEnhanced serves the enhanced badge (forced icon + accent defaults).
// GET /badge-crypto.svg
func (h *Handlers) BadgeEnhanced(w http.ResponseWriter, r *http.Request) {
	h.serveBadge(w, r, string(badge.StyleEnhanced), badge.GenerateEnhanced)
}

// serveBadge runs the pipeline and writes the SVG with cache-validator
// headers. The pipeline output is deterministic for a given query, so the
// ETag is a plain hash of the body.
func (h *Handlers) serveBadge(w http.ResponseWriter, r *http.Request, style string, generate func(map[string]string) (string, error)) {
	raw := queryToMap(r)

	svg, err := generate(raw)
	if err != nil {
		if errors.Is(err, domain.ErrTextTooLong) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		h.logger.Error("badge generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.recordRender(style, raw)

	etag := fmt.Sprintf(`"%x"`, sha256.Sum256([]byte(svg)))
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml;charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(svg))
}

// queryToMap flattens query parameters to the pipeline's input shape,
// keeping the first value of each key.
func queryToMap(r *http.Request) map[string]string {
	query := r.URL.Query()
	raw := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}
	return raw
}

// recordRender persists a render event off the request path. Analytics are
// best-effort and never delay or fail a badge response.
func (h *Handlers) recordRender(style string, raw map[string]string) {
	if h.recorder == nil {
		return
	}

	ev := domain.NewRenderEvent(style, domain.ParseIcon(badge.Sanitize(raw["icon"])))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.recorder.Record(ctx, ev); err != nil {
			h.logger.Warn("failed to record render", "error", err)
		}
	}()
}
