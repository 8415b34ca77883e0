// SPDX-License-Identifier: AGPL-3.0-or-later

package domain

import (
	"fmt"
	"strings"
)

// CurrencyCode is a normalized (lowercase) currency ticker like "btc" or "usd".
type CurrencyCode string

// NewCurrencyCode normalizes and validates a currency code. Codes are
// case-insensitive on input and stored lowercase so that "BTC" and "btc"
// refer to the same currency.
func NewCurrencyCode(s string) (CurrencyCode, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if code == "" {
		return "", fmt.Errorf("%w: empty code", ErrInvalidCurrency)
	}
	if len(code) > 10 {
		return "", fmt.Errorf("%w: code too long", ErrInvalidCurrency)
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "", fmt.Errorf("%w: %q must be alphanumeric", ErrInvalidCurrency, s)
		}
	}
	return CurrencyCode(code), nil
}

// String returns the string representation.
func (c CurrencyCode) String() string {
	return string(c)
}
