// SPDX-License-Identifier: AGPL-3.0-or-later

// Package embedcode builds Markdown and HTML snippets that embed a badge
// image in a README or web page.
package embedcode

import (
	"fmt"
	"html"
)

// EmbedCode holds ready-to-paste snippets for one badge.
type EmbedCode struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// Markdown returns a Markdown image link: [![alt](imageURL)](linkURL).
// Without a linkURL the bare image is returned.
func Markdown(imageURL, linkURL, alt string) string {
	img := fmt.Sprintf("![%s](%s)", alt, imageURL)
	if linkURL == "" {
		return img
	}
	return fmt.Sprintf("[%s](%s)", img, linkURL)
}

// HTML returns an anchor-wrapped img tag. The alt text is entity-escaped
// because it lands in attribute position.
func HTML(imageURL, linkURL, alt string) string {
	img := fmt.Sprintf(`<img src="%s" alt="%s"/>`, html.EscapeString(imageURL), html.EscapeString(alt))
	if linkURL == "" {
		return img
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(linkURL), img)
}

// For builds both snippet flavors for one badge.
func For(imageURL, linkURL, alt string) EmbedCode {
	return EmbedCode{
		Markdown: Markdown(imageURL, linkURL, alt),
		HTML:     HTML(imageURL, linkURL, alt),
	}
}
