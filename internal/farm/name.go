package farm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SanitizeName normalizes a display name: NFC form, control and format characters
// removed, whitespace runs collapsed, trimmed and cut to MaxNameRunes.
// The result may be empty.
func SanitizeName(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		}
		return r
	}, norm.NFC.String(raw))

	name := strings.Join(strings.Fields(cleaned), " ")
	if runes := []rune(name); len(runes) > MaxNameRunes {
		name = strings.TrimSpace(string(runes[:MaxNameRunes]))
	}
	return name
}
