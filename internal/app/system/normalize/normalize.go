// Package normalize provides canonical forms for user-supplied fields
// before they are validated or persisted.
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

// AuthMethod lowercases and trims an auth method name.
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Category trims a category value. Case is preserved: the category filter
// is an exact match against the configured list.
func Category(s string) string {
	return strings.TrimSpace(s)
}

// Tag lowercases and trims a single tag label.
func Tag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Tags normalizes a tag list: each tag lowercased and trimmed, empties and
// duplicates dropped, original insertion order preserved for display.
func Tags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, t := range in {
		t = Tag(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
