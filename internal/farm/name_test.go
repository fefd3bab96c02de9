package farm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Alice", "Alice"},
		{"trimmed", "  Alice  ", "Alice"},
		{"control chars", "Al\x00i\x07ce", "Alice"},
		{"zero width", "A\u200bli\u200dce", "Alice"},
		{"collapsed whitespace", "Farmer \t\n Joe", "Farmer Joe"},
		{"composed", "Cafe\u0301", "Caf\u00e9"},
		{"only control", "\x01\x02", ""},
		{"cjk", " 小明 ", "小明"},
		{"long", strings.Repeat("农", 40), strings.Repeat("农", MaxNameRunes)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}
