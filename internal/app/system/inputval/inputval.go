// internal/app/system/inputval/inputval.go
package inputval

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Password length bounds. The upper bound exists because bcrypt only
// hashes the first 72 bytes of input.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// IsValidEmail reports whether s is a plain RFC 5322 address. Display
// name forms like "Name <a@b.com>" are rejected; only the bare address
// is accepted.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// ValidatePassword returns a user-facing message when the password is
// unacceptable, or "" when it passes.
func ValidatePassword(password string) string {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return "Password must be at least 8 characters long."
	}
	if len(password) > MaxPasswordLength {
		return "Password is too long."
	}
	return ""
}

// ValidateFullName returns a user-facing message when the name is
// unacceptable, or "" when it passes.
func ValidateFullName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Full name is required."
	}
	if utf8.RuneCountInString(name) > 120 {
		return "Full name is too long."
	}
	return ""
}
