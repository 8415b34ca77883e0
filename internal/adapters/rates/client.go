// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rates fetches cryptocurrency exchange rates from a CoinGecko-style
// HTTP API, with an in-memory TTL cache in front.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/paybadge/paybadge/internal/domain"
)

// DefaultBaseURL is the public CoinGecko API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// coinIDs maps common tickers to API coin identifiers. Tickers not listed
// here are passed through lowercase as-is.
var coinIDs = map[domain.CurrencyCode]string{
	"btc":  "bitcoin",
	"eth":  "ethereum",
	"ltc":  "litecoin",
	"doge": "dogecoin",
	"xmr":  "monero",
	"sol":  "solana",
	"ada":  "cardano",
	"dot":  "polkadot",
	"bch":  "bitcoin-cash",
	"xrp":  "ripple",
}

// Client fetches exchange rates with TTL caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	ttl        time.Duration
	cache      *rateCache
}

// rateCache provides in-memory caching with TTL.
type rateCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	rate      float64
	expiresAt time.Time
}

// NewClient creates a Client. An empty baseURL selects the public API; a
// non-positive ttl defaults to one minute.
func NewClient(baseURL string, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		ttl:        ttl,
		cache: &rateCache{
			entries: make(map[string]cacheEntry),
		},
	}
}

// GetCurrentRate returns the current price of one unit of crypto in fiat.
// Currency codes are case-insensitive: "BTC"/"USD" and "btc"/"usd" resolve
// to the same endpoint path and the same cache entry.
func (c *Client) GetCurrentRate(ctx context.Context, crypto, fiat string) (float64, error) {
	cryptoCode, err := domain.NewCurrencyCode(crypto)
	if err != nil {
		return 0, err
	}
	fiatCode, err := domain.NewCurrencyCode(fiat)
	if err != nil {
		return 0, err
	}

	coinID := cryptoCode.String()
	if id, ok := coinIDs[cryptoCode]; ok {
		coinID = id
	}

	cacheKey := coinID + ":" + fiatCode.String()
	if rate, ok := c.cache.get(cacheKey); ok {
		return rate, nil
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, url.QueryEscape(coinID), url.QueryEscape(fiatCode.String()))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch rates API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, fmt.Errorf("%w: rates API rate limit exceeded", domain.ErrRateUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: rates API returned status %d", domain.ErrRateUnavailable, resp.StatusCode)
	}

	// Response shape: {"bitcoin": {"usd": 64021.5}}
	var apiResp map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	rate, ok := apiResp[coinID][fiatCode.String()]
	if !ok {
		return 0, fmt.Errorf("%w: no %s/%s quote in response", domain.ErrRateUnavailable, cryptoCode, fiatCode)
	}

	c.cache.set(cacheKey, rate, c.ttl)
	return rate, nil
}

// get retrieves a cached value if it exists and hasn't expired.
func (rc *rateCache) get(key string) (float64, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	entry, ok := rc.entries[key]
	if !ok {
		return 0, false
	}
	if time.Now().After(entry.expiresAt) {
		return 0, false
	}
	return entry.rate, true
}

// set stores a value in the cache with the given TTL.
func (rc *rateCache) set(key string, rate float64, ttl time.Duration) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.entries[key] = cacheEntry{
		rate:      rate,
		expiresAt: time.Now().Add(ttl),
	}
}

// cleanup removes expired entries from the cache.
func (rc *rateCache) cleanup() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	now := time.Now()
	for key, entry := range rc.entries {
		if now.After(entry.expiresAt) {
			delete(rc.entries, key)
		}
	}
}

// StartCleanup starts a background goroutine that periodically removes
// expired cache entries until the context is cancelled.
func (c *Client) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.cache.cleanup()
			}
		}
	}()
}
