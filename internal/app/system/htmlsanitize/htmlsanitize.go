// Package htmlsanitize strips dangerous markup from user-generated content.
// Lead notes accept pasted rich text, so everything is run through a
// bluemonday UGC policy before it reaches Mongo.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with scripts, event handlers, and unsafe protocols
// removed. Common formatting (paragraphs, emphasis, lists, headings, links)
// survives.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// IsPlainText reports whether s contains no HTML tags at all.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}
