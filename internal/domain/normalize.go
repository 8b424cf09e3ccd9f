package domain

import (
	"strings"
)

// CleanText trims leading and trailing whitespace. Inner spacing and case
// are preserved: ingredient names match exactly after trimming.
func CleanText(text string) string {
	return strings.TrimSpace(text)
}

// NullIfBlank returns nil for nil or whitespace-only strings, otherwise a
// pointer to a copy of the value as submitted.
func NullIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

// NullIfZero maps a zero value to nil so that optional counters such as
// prep time are stored as NULL rather than 0.
func NullIfZero(n *int) *int {
	if n == nil || *n == 0 {
		return nil
	}
	v := *n
	return &v
}
