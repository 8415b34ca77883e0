// SPDX-License-Identifier: AGPL-3.0-or-later

package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paybadge/paybadge/internal/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetCurrentRate(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches and parses a quote", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/simple/price" {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			if got := r.URL.Query().Get("ids"); got != "bitcoin" {
				t.Errorf("ids = %q, want bitcoin", got)
			}
			if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
				t.Errorf("vs_currencies = %q, want usd", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"bitcoin":{"usd":64021.5}}`))
		})

		client := NewClient(srv.URL, time.Minute)
		rate, err := client.GetCurrentRate(ctx, "btc", "usd")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rate != 64021.5 {
			t.Errorf("rate = %v, want 64021.5", rate)
		}
	})

	t.Run("currency codes are case-insensitive", func(t *testing.T) {
		var paths []string
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.RequestURI())
			_, _ = w.Write([]byte(`{"bitcoin":{"usd":100}}`))
		})

		// Separate clients so the second call cannot be served from cache.
		lower := NewClient(srv.URL, time.Minute)
		upper := NewClient(srv.URL, time.Minute)

		if _, err := lower.GetCurrentRate(ctx, "btc", "usd"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := upper.GetCurrentRate(ctx, "BTC", "USD"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(paths) != 2 {
			t.Fatalf("expected 2 upstream requests, got %d", len(paths))
		}
		if paths[0] != paths[1] {
			t.Errorf("normalized endpoint paths differ: %q vs %q", paths[0], paths[1])
		}
	})

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		calls := 0
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			_, _ = w.Write([]byte(`{"ethereum":{"eur":2500}}`))
		})

		client := NewClient(srv.URL, time.Minute)
		for i := 0; i < 3; i++ {
			if _, err := client.GetCurrentRate(ctx, "ETH", "eur"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if calls != 1 {
			t.Errorf("expected 1 upstream call, got %d", calls)
		}
	})

	t.Run("unknown ticker passes through lowercase", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("ids"); got != "pepe" {
				t.Errorf("ids = %q, want pepe", got)
			}
			_, _ = w.Write([]byte(`{"pepe":{"usd":0.00001}}`))
		})

		client := NewClient(srv.URL, time.Minute)
		if _, err := client.GetCurrentRate(ctx, "PEPE", "usd"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing quote is ErrRateUnavailable", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		client := NewClient(srv.URL, time.Minute)
		if _, err := client.GetCurrentRate(ctx, "btc", "usd"); !errors.Is(err, domain.ErrRateUnavailable) {
			t.Errorf("expected ErrRateUnavailable, got %v", err)
		}
	})

	t.Run("upstream error status is ErrRateUnavailable", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		client := NewClient(srv.URL, time.Minute)
		if _, err := client.GetCurrentRate(ctx, "btc", "usd"); !errors.Is(err, domain.ErrRateUnavailable) {
			t.Errorf("expected ErrRateUnavailable, got %v", err)
		}
	})

	t.Run("invalid currency rejected before any request", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no upstream request expected")
		})

		client := NewClient(srv.URL, time.Minute)
		if _, err := client.GetCurrentRate(ctx, "btc/usd", "usd"); !errors.Is(err, domain.ErrInvalidCurrency) {
			t.Errorf("expected ErrInvalidCurrency, got %v", err)
		}
	})
}
