// Package htmlsanitize strips markup from user-supplied text before it is
// persisted. Descriptions arrive from an open upload form and are later
// rendered by arbitrary clients, so nothing beyond plain text survives.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text returns s with every HTML element and attribute removed, entities
// intact, surrounding whitespace trimmed.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
