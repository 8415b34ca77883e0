// SPDX-License-Identifier: AGPL-3.0-or-later

package badge

import "github.com/paybadge/paybadge/internal/domain"

// Default badge parameters. Any field that is missing, empty or sanitized
// away falls back to these.
const (
	DefaultLeftText  = "paybadge"
	DefaultRightText = "crypto"
)

var (
	// DefaultLeftColor is the label background (left side).
	DefaultLeftColor = domain.HexColor("#555")

	// DefaultRightColor is the value background (right side).
	DefaultRightColor = domain.HexColor("#4c1")

	// EnhancedRightColor is the bitcoin-orange accent seeded by the
	// enhanced entry point.
	EnhancedRightColor = domain.HexColor("#f7931a")
)

// Named palette for presets and error badges.
var (
	ColorGreen  = domain.HexColor("#4c1")
	ColorOrange = domain.HexColor("#f7931a")
	ColorBlue   = domain.HexColor("#007ec6")
	ColorRed    = domain.HexColor("#e05d44")
	ColorGray   = domain.HexColor("#9f9f9f")
)
