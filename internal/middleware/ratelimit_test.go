// SPDX-License-Identifier: AGPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paybadge/paybadge/internal/config"
)

// okHandler is a simple handler that returns 200 OK
func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func testConfig() config.RateLimitConfig {
	route := config.RateLimitRouteConfig{
		Requests: 2,
		Period:   time.Minute,
		Burst:    2,
	}
	return config.RateLimitConfig{
		Enabled:         true,
		CleanupInterval: 0, // no cleanup loop in tests
		Badge:           route,
		Rates:           route,
		Admin:           route,
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expectedIP string
	}{
		{
			name:       "no proxy headers",
			remoteAddr: "192.168.1.1:12345",
			headers:    map[string]string{},
			expectedIP: "192.168.1.1",
		},
		{
			name:       "X-Forwarded-For single IP",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			expectedIP: "203.0.113.50",
		},
		{
			name:       "X-Forwarded-For multiple IPs",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 70.41.3.18"},
			expectedIP: "203.0.113.50",
		},
		{
			name:       "X-Real-IP",
			remoteAddr: "10.0.0.1:12345",
			headers:    map[string]string{"X-Real-IP": "198.51.100.178"},
			expectedIP: "198.51.100.178",
		},
		{
			name:       "remoteAddr without port",
			remoteAddr: "192.168.1.1",
			headers:    map[string]string{},
			expectedIP: "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			if ip := getClientIP(req); ip != tt.expectedIP {
				t.Errorf("getClientIP() = %q, want %q", ip, tt.expectedIP)
			}
		})
	}
}

func TestBadgeMiddleware(t *testing.T) {
	rl := NewRateLimiter(testConfig(), nil)
	defer rl.Stop()

	handler := rl.BadgeMiddleware(okHandler)

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest("GET", "/badge.svg", nil)
		req.RemoteAddr = "203.0.113.50:12345"
		rec := httptest.NewRecorder()
		handler(rec, req)
		statuses = append(statuses, rec.Code)
	}

	// Burst of 2 is allowed, then the bucket is empty
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests should pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request should be limited, got %v", statuses)
	}
}

func TestMiddlewareIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(testConfig(), nil)
	defer rl.Stop()

	handler := rl.RatesMiddleware(okHandler)

	// Exhaust the first client's bucket
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/rate", nil)
		req.RemoteAddr = "203.0.113.50:1"
		handler(httptest.NewRecorder(), req)
	}

	// A different client still passes
	req := httptest.NewRequest("GET", "/api/v1/rate", nil)
	req.RemoteAddr = "198.51.100.178:1"
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("separate client should not be limited, got %d", rec.Code)
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	rl := NewRateLimiter(cfg, nil)
	defer rl.Stop()

	handler := rl.AdminMiddleware(okHandler)

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
		req.RemoteAddr = "203.0.113.50:1"
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("disabled limiter must pass all requests, got %d on request %d", rec.Code, i)
		}
	}
}

func TestRateLimitHeaders(t *testing.T) {
	rl := NewRateLimiter(testConfig(), nil)
	defer rl.Stop()

	handler := rl.BadgeMiddleware(okHandler)
	req := httptest.NewRequest("GET", "/badge.svg", nil)
	req.RemoteAddr = "203.0.113.50:1"
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Header().Get("X-RateLimit-Limit") != "2" {
		t.Errorf("X-RateLimit-Limit = %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("X-RateLimit-Reset should be set")
	}
}
