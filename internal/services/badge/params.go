// SPDX-License-Identifier: AGPL-3.0-or-later

package badge

import (
	"unicode/utf8"

	"github.com/paybadge/paybadge/internal/domain"
)

// Style selects the badge rendering variant.
type Style string

const (
	StyleStandard Style = "standard"
	StyleEnhanced Style = "enhanced"
)

// ParseStyle maps a raw style to a Style, falling back to standard.
func ParseStyle(s string) Style {
	if Style(s) == StyleEnhanced {
		return StyleEnhanced
	}
	return StyleStandard
}

// Params is a fully validated, sanitized badge parameter set. Immutable once
// constructed; build one through Validate.
type Params struct {
	LeftText   string
	RightText  string
	LeftColor  domain.HexColor
	RightColor domain.HexColor
	Style      Style
	Icon       domain.Icon
}

// Recognized query keys. The legacy "text" key is an alias that overwrites
// rightText unconditionally for backward compatibility.
const (
	keyLeftText   = "leftText"
	keyRightText  = "rightText"
	keyLeftColor  = "leftColor"
	keyRightColor = "rightColor"
	keyStyle      = "style"
	keyIcon       = "icon"
	keyLegacyText = "text"
)

// Validate merges raw query parameters with defaults and sanitizes every
// field. The only hard failure is domain.ErrTextTooLong, raised when the raw
// pre-decoded leftText or rightText exceeds MaxTextLength. The check runs
// before decoding and sanitization so encoded input that shrinks after
// decoding cannot bypass the limit. All other malformed input silently
// normalizes to a safe default.
func Validate(raw map[string]string) (Params, error) {
	leftText := raw[keyLeftText]
	rightText := raw[keyRightText]

	// Legacy alias wins over rightText, applied before the length check.
	if text, ok := raw[keyLegacyText]; ok {
		rightText = text
	}

	if utf8.RuneCountInString(leftText) > MaxTextLength ||
		utf8.RuneCountInString(rightText) > MaxTextLength {
		return Params{}, domain.ErrTextTooLong
	}

	p := Params{
		LeftText:  sanitizeOr(leftText, DefaultLeftText),
		RightText: sanitizeOr(rightText, DefaultRightText),
		Style:     ParseStyle(Sanitize(raw[keyStyle])),
		Icon:      domain.ParseIcon(Sanitize(raw[keyIcon])),
	}
	p.LeftColor, p.RightColor = validateColors(raw[keyLeftColor], raw[keyRightColor])

	return p, nil
}

// validateColors resolves both color fields atomically: if either candidate
// fails the hex pattern, both revert to defaults together.
func validateColors(rawLeft, rawRight string) (domain.HexColor, domain.HexColor) {
	left := sanitizeOr(rawLeft, DefaultLeftColor.String())
	right := sanitizeOr(rawRight, DefaultRightColor.String())

	if !domain.IsHexColor(left) || !domain.IsHexColor(right) {
		return DefaultLeftColor, DefaultRightColor
	}
	return domain.HexColor(left), domain.HexColor(right)
}
