package validation

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims s and converts it to Unicode NFC
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeOptional normalizes a nullable value. Blank values become nil.
func NormalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := Normalize(*s)
	if v == "" {
		return nil
	}
	return &v
}
