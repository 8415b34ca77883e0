// SPDX-License-Identifier: AGPL-3.0-or-later

package domain

import (
	"fmt"
	"regexp"
)

// HexColor is a validated CSS hex color like "#4c1" or "#f7931a".
type HexColor string

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{3,6}$`)

// NewHexColor creates and validates a HexColor.
func NewHexColor(s string) (HexColor, error) {
	if !hexColorRegex.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return HexColor(s), nil
}

// IsHexColor reports whether s is a well-formed hex color.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// String returns the string representation.
func (c HexColor) String() string {
	return string(c)
}
