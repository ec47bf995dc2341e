// Package sanitize strips markup from user-supplied profile text before it
// is stored.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy removes all HTML tags and attributes. Profile fields are
// plain text only: names, company, job title, phone.
var strictPolicy = bluemonday.StrictPolicy()

// Text strips all HTML from a single field and trims surrounding space.
func Text(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// TextSlice sanitizes each string in a slice.
func TextSlice(inputs []string) []string {
	if inputs == nil {
		return nil
	}
	sanitized := make([]string, len(inputs))
	for i, input := range inputs {
		sanitized[i] = Text(input)
	}
	return sanitized
}
