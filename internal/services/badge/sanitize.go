// SPDX-License-Identifier: AGPL-3.0-or-later

// Package badge implements the badge rendering pipeline: parameter
// validation, input sanitization, layout computation and SVG emission.
package badge

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the hard limit on badge text, enforced on raw input.
const MaxTextLength = 50

// Sanitization is an ordered chain of destructive rewrites. Order matters:
// keywords are removed before bare characters so that inputs engineered to
// reassemble forbidden substrings after a later step stay neutralized.
var (
	tagRegex      = regexp.MustCompile(`<[^>]*>`)
	protocolRegex = regexp.MustCompile(`(?i)javascript:|vbscript:`)
	handlerRegex  = regexp.MustCompile(`(?i)on\w+=`)
	keywordRegex  = regexp.MustCompile(`(?i)script|alert|eval|prompt|confirm`)
	rawCharRegex  = regexp.MustCompile(`[<>&"']`)
)

// Sanitize strips markup, script protocols, event handlers and unsafe
// characters from a free-text field, then trims and truncates the result.
// The sanitized value is interpolated into SVG text nodes without a second
// escaping pass, so this is the only injection defense. Removal is
// deliberately destructive, not escaping; benign text containing words like
// "alert" loses them too.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	s := raw
	// Percent-decode so encoded payloads cannot smuggle past the filters.
	// A malformed escape sequence falls back to the raw string.
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}

	s = tagRegex.ReplaceAllString(s, "")
	s = protocolRegex.ReplaceAllString(s, "")
	s = handlerRegex.ReplaceAllString(s, "")
	s = keywordRegex.ReplaceAllString(s, "")
	s = rawCharRegex.ReplaceAllString(s, "")

	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxTextLength {
		s = string([]rune(s)[:MaxTextLength])
	}

	return s
}

// sanitizeOr sanitizes raw and substitutes fallback if nothing survives.
func sanitizeOr(raw, fallback string) string {
	if s := Sanitize(raw); s != "" {
		return s
	}
	return fallback
}
