// Package strings provides string helpers shared by filtering and queries
package strings

import (
	std "strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Fold returns s with full Unicode case folding applied, for
// case-insensitive comparison and matching
func Fold(s string) string { return folder.String(s) }

// ContainsFold reports whether sub is within s, ignoring case
func ContainsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return std.Contains(Fold(s), Fold(sub))
}

// EmptyToNil returns empty string if s is all whitespace, otherwise returns s
func EmptyToNil(s string) string {
	if std.TrimSpace(s) == "" {
		return ""
	}
	return s
}
