// SPDX-License-Identifier: AGPL-3.0-or-later

package badge

import "github.com/paybadge/paybadge/internal/domain"

// iconGlyph returns the inline SVG fragment for an icon, drawn in a 16x16
// box anchored at the group origin. "crypto" and "bitcoin" are named aliases
// for the same glyph; unknown icons render nothing.
func iconGlyph(i domain.Icon) string {
	switch i {
	case domain.IconCrypto, domain.IconBitcoin:
		return `<circle cx="8" cy="8" r="7" fill="#fff" fill-opacity=".25"/>` +
			`<text x="8" y="12" font-size="11" text-anchor="middle" fill="#fff">&#8383;</text>`
	default:
		return ""
	}
}
