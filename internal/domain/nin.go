package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// NIN format: literal "SO-" prefix, 4-digit year, 6-digit zero-padded sequence.
var ninPattern = regexp.MustCompile(`^SO-\d{4}-\d{6}$`)

// FormatNIN builds a candidate NIN from a year and a 0..999999 sequence number.
func FormatNIN(year int, seq int) string {
	return fmt.Sprintf("SO-%04d-%06d", year, seq)
}

// ValidNIN reports whether s is a full match of the NIN format.
func ValidNIN(s string) bool {
	return ninPattern.MatchString(s)
}

// NormalizeNIN trims surrounding whitespace from raw caller input.
func NormalizeNIN(s string) string {
	return strings.TrimSpace(s)
}
