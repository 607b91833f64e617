// internal/app/system/htmlsanitize/htmlsanitize.go
// Package htmlsanitize removes markup from free-text fields (names,
// organization names) before they are validated and stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every element. Contents of script/style are dropped entirely.
var strict = bluemonday.StrictPolicy()

// StripTags removes all HTML from s and returns plain text. Entities that the
// policy escapes on output (&, ', ") are decoded again so that names like
// "O'Brien" survive unchanged.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// IsPlainText reports whether s contains no tag-like sequences.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}
