// SPDX-License-Identifier: AGPL-3.0-or-later

package badge

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// Fixed styling constants shared by layout and emitter.
const (
	fontSize     = 11
	heightPx     = 20
	textPadding  = 12
	iconWidthPx  = 16
	minSegmentPx = 55
	baselineY    = 14
)

// Layout holds computed badge box dimensions and text anchor positions.
// Derived from Params and never persisted.
type Layout struct {
	LeftWidth  float64
	RightWidth float64
	TotalWidth float64
	LeftTextX  float64
	RightTextX float64
	BaselineY  int
}

// textWidth estimates rendered width as a fixed fraction of the font size
// per rune. A deliberate approximation, not glyph metrics; badges are sized
// generously enough that it holds up.
func textWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * 0.6
}

// Compute derives the badge layout from validated parameters.
func Compute(p Params) Layout {
	iconWidth := 0.0
	if p.Icon.IsSet() {
		iconWidth = iconWidthPx
	}

	leftWidth := math.Max(textWidth(p.LeftText)+textPadding, minSegmentPx)
	rightWidth := math.Max(textWidth(p.RightText)+textPadding+iconWidth, minSegmentPx)

	return Layout{
		LeftWidth:  leftWidth,
		RightWidth: rightWidth,
		TotalWidth: leftWidth + rightWidth,
		LeftTextX:  leftWidth / 2,
		RightTextX: leftWidth + rightWidth/2,
		BaselineY:  baselineY,
	}
}

// fmtPx renders a pixel dimension with at most one decimal place, dropping
// a trailing ".0" so integral widths stay integral in the markup.
func fmtPx(f float64) string {
	return strconv.FormatFloat(math.Round(f*10)/10, 'f', -1, 64)
}
