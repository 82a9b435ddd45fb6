package normalize

import (
	"reflect"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  User@Example.Com  ", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ada Obi", "Ada Obi"},
		{"  Ada Obi  ", "Ada Obi"},
		{"UPPERCASE NAME", "UPPERCASE NAME"}, // Name preserves case
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategoryPreservesCase(t *testing.T) {
	if got := Category("  Mathematics "); got != "Mathematics" {
		t.Errorf("Category = %q, want %q", got, "Mathematics")
	}
}

func TestTags(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"lowercases and trims", []string{" Math ", "JSS1"}, []string{"math", "jss1"}},
		{"drops empties", []string{"", "  ", "waec"}, []string{"waec"}},
		{"drops duplicates keeps first order", []string{"math", "MATH", "jss1", "math"}, []string{"math", "jss1"}},
		{"nil input", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tags(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tags(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
