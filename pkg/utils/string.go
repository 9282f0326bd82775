// Package utils provides small shared helpers.
package utils

import (
	"regexp"
	"strings"
)

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9_\-]+`)

// NormalizeWhitespace collapses whitespace runs into single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SafeFileName converts a model identifier like "iphone_15" into a name that
// is safe to use on disk.
func SafeFileName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	return unsafeFileChars.ReplaceAllString(name, "-")
}
