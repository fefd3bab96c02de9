package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// Fold normalizes a crop name for lookup: trimmed, Unicode case folded and
// full-width forms narrowed, so "ＣＡＲＲＯＴ" and "carrot" compare equal.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(width.Narrow.String(s))
}

func containsFolded(s, foldedKey string) bool {
	return strings.Contains(Fold(s), foldedKey)
}
