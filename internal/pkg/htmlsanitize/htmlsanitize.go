// Package htmlsanitize strips unsafe markup from user-supplied note text.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicy = bluemonday.UGCPolicy()
	titlePolicy   = bluemonday.StrictPolicy()
)

// Sanitize keeps user-generated formatting (links, emphasis, lists) and drops
// scripts, event handlers and javascript: URLs.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return contentPolicy.Sanitize(s)
}

// SanitizeTitle removes every tag and trims surrounding whitespace.
func SanitizeTitle(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(titlePolicy.Sanitize(s))
}
