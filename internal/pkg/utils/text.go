package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims s and converts it to NFC, so Hangul typed as
// decomposed jamo compares equal to the precomposed form.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizePtr applies NormalizeText and maps blank values to nil.
func NormalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := NormalizeText(*s)
	if v == "" {
		return nil
	}
	return &v
}
