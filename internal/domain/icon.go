// SPDX-License-Identifier: AGPL-3.0-or-later

package domain

// Icon identifies an embedded badge glyph. The set is closed: unknown
// identifiers parse to IconNone and render nothing.
type Icon string

const (
	IconNone    Icon = ""
	IconCrypto  Icon = "crypto"
	IconBitcoin Icon = "bitcoin"
)

// ParseIcon maps a raw identifier to an Icon, falling back to IconNone.
func ParseIcon(s string) Icon {
	switch Icon(s) {
	case IconCrypto:
		return IconCrypto
	case IconBitcoin:
		return IconBitcoin
	default:
		return IconNone
	}
}

// String returns the string representation.
func (i Icon) String() string {
	return string(i)
}

// IsSet reports whether the icon selects a glyph.
func (i Icon) IsSet() bool {
	return i != IconNone
}
