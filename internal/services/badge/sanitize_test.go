// SPDX-License-Identifier: AGPL-3.0-or-later

package badge

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", ""},
		{"plain text untouched", "donate", "donate"},
		{"html tags deleted", "<b>bold</b>", "bold"},
		{"script tag and keyword", `<script>alert("xss")</script>`, "(xss)"},
		{"javascript protocol", "javascript:alert(1)", "(1)"},
		{"vbscript protocol", "VBScript:msgbox", "msgbox"},
		{"event handler attribute", "onerror=boom", "boom"},
		{"mixed case handler", "OnClick=x", "x"},
		{"keywords stripped case-insensitively", "ScRiPt eVaL PROMPT confirm", ""},
		{"bare angle brackets", "a<b", "ab"},
		{"ampersand and quotes", `a&b"c'd`, "abcd"},
		{"percent-encoded payload decoded first", "%3Cscript%3Ealert(1)%3C/script%3E", "(1)"},
		{"malformed escape falls back to raw", "100%", "100%"},
		{"whitespace trimmed", "  hi  ", "hi"},
		{"benign word containing keyword", "description", "deion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := Sanitize(long)
	if len(got) != MaxTextLength {
		t.Errorf("expected %d chars, got %d", MaxTextLength, len(got))
	}
}

func TestSanitizeNeverReassemblesKeywords(t *testing.T) {
	// Characters stripped after keyword removal must not rebuild a keyword.
	inputs := []string{
		"scr<ipt>",
		`al"ert`,
		"ja'vascript:",
	}
	for _, in := range inputs {
		got := strings.ToLower(Sanitize(in))
		for _, bad := range []string{"<", ">", "&", `"`, "'", "javascript:"} {
			if strings.Contains(got, bad) {
				t.Errorf("Sanitize(%q) = %q still contains %q", in, got, bad)
			}
		}
	}
}

func TestSanitizeOrFallback(t *testing.T) {
	if got := sanitizeOr("<script></script>", "fallback"); got != "fallback" {
		t.Errorf("expected fallback for fully stripped input, got %q", got)
	}
	if got := sanitizeOr("keep", "fallback"); got != "keep" {
		t.Errorf("expected original value, got %q", got)
	}
}
