// Package normalize canonicalizes user-entered fields before they are
// validated or written to Mongo. Stores call these at the boundary so the
// database never sees mixed-case emails or padded names.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone strips all whitespace so "+1 555 0100" and "+15550100" compare equal.
func Phone(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Role lowercases and trims a role slug.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Source lowercases and trims a lead source tag.
func Source(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
