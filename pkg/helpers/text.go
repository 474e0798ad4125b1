package helpers

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName puts a display name in NFC and collapses runs of whitespace.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
