package utils

import "strings"

// ShortID returns the first 8 characters of an id, upper-cased.
// Used for receipt numbers when the POS code is missing.
func ShortID(id string) string {
	runes := []rune(strings.ReplaceAll(id, "-", ""))
	if len(runes) > 8 {
		runes = runes[:8]
	}
	return strings.ToUpper(string(runes))
}
