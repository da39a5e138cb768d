package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips every HTML element. bluemonday policies are safe for concurrent use.
var textPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds the decode loop for nested entity encodings.
const maxSanitizePasses = 8

// SanitizeText removes markup from free-text fields and trims surrounding whitespace.
// Entity-encoded markup is decoded and stripped again until the text is stable,
// so the result never carries tags once decoded. Text that does not settle
// within maxSanitizePasses is returned in its escaped form.
func SanitizeText(s string) string {
	current := strings.TrimSpace(s)
	for range maxSanitizePasses {
		sanitized := textPolicy.Sanitize(current)
		next := strings.TrimSpace(html.UnescapeString(sanitized))
		if next == current {
			return current
		}
		current = next
	}
	return strings.TrimSpace(textPolicy.Sanitize(current))
}
