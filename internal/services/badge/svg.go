// SPDX-License-Identifier: AGPL-3.0-or-later

package badge

import (
	"fmt"
	"strings"

	"github.com/paybadge/paybadge/internal/domain"
)

// Render assembles the final SVG markup for a validated parameter set and
// its layout. Output is a single deterministic string: no timestamps, no
// randomness, so the bytes are safe to hash for cache validators.
func Render(p Params, l Layout) string {
	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%d" role="img" aria-label="%s: %s">`,
		fmtPx(l.TotalWidth), heightPx, p.LeftText, p.RightText))

	// Title for accessibility
	svg.WriteString(fmt.Sprintf(`<title>%s: %s</title>`, p.LeftText, p.RightText))

	// Linear gradient for the glossy top-to-bottom overlay
	svg.WriteString(`<linearGradient id="s" x2="0" y2="100%">`)
	svg.WriteString(`<stop offset="0" stop-color="#bbb" stop-opacity=".1"/>`)
	svg.WriteString(`<stop offset="1" stop-opacity=".1"/>`)
	svg.WriteString(`</linearGradient>`)

	// Clipping path for rounded corners
	svg.WriteString(fmt.Sprintf(`<clipPath id="r"><rect width="%s" height="%d" rx="3" fill="#fff"/></clipPath>`,
		fmtPx(l.TotalWidth), heightPx))

	// Two-tone background under the clip
	svg.WriteString(`<g clip-path="url(#r)">`)
	svg.WriteString(fmt.Sprintf(`<rect width="%s" height="%d" fill="%s"/>`,
		fmtPx(l.LeftWidth), heightPx, p.LeftColor))
	svg.WriteString(fmt.Sprintf(`<rect x="%s" width="%s" height="%d" fill="%s"/>`,
		fmtPx(l.LeftWidth), fmtPx(l.RightWidth), heightPx, p.RightColor))
	svg.WriteString(fmt.Sprintf(`<rect width="%s" height="%d" fill="url(#s)"/>`,
		fmtPx(l.TotalWidth), heightPx))
	svg.WriteString(`</g>`)

	// Each label renders twice: a semi-transparent dark shadow at the
	// baseline and a solid white copy 1px above, for a subtle emboss.
	svg.WriteString(fmt.Sprintf(`<g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="%d">`,
		fontSize))
	writeLabel(&svg, l.LeftTextX, l.BaselineY, p.LeftText)
	writeLabel(&svg, l.RightTextX, l.BaselineY, p.RightText)
	svg.WriteString(`</g>`)

	if glyph := iconGlyph(p.Icon); glyph != "" {
		svg.WriteString(fmt.Sprintf(`<g transform="translate(%s,2)">%s</g>`,
			fmtPx(l.LeftWidth+4), glyph))
	}

	svg.WriteString(`</svg>`)

	return svg.String()
}

func writeLabel(svg *strings.Builder, x float64, y int, text string) {
	svg.WriteString(fmt.Sprintf(`<text aria-hidden="true" x="%s" y="%d" fill="#010101" fill-opacity=".3">%s</text>`,
		fmtPx(x), y, text))
	svg.WriteString(fmt.Sprintf(`<text x="%s" y="%d">%s</text>`,
		fmtPx(x), y-1, text))
}

// GenerateStandard runs the full pipeline for the standard badge entry
// point: validate, lay out, emit.
func GenerateStandard(raw map[string]string) (string, error) {
	p, err := Validate(raw)
	if err != nil {
		return "", err
	}
	return Render(p, Compute(p)), nil
}

// GenerateEnhanced pre-seeds the enhanced defaults (forced enhanced style,
// crypto icon, bitcoin-orange accent) and delegates to the standard
// pipeline. Enhancement is parameter seeding, not a separate rendering path.
func GenerateEnhanced(raw map[string]string) (string, error) {
	seeded := make(map[string]string, len(raw)+3)
	for k, v := range raw {
		seeded[k] = v
	}
	seeded[keyStyle] = string(StyleEnhanced)
	if seeded[keyIcon] == "" {
		seeded[keyIcon] = domain.IconCrypto.String()
	}
	if seeded[keyRightColor] == "" {
		seeded[keyRightColor] = EnhancedRightColor.String()
	}
	return GenerateStandard(seeded)
}
