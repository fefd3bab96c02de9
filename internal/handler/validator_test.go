package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	UID   string `validate:"required,max=64,uid"`
	Name  string `validate:"max=8"`
	Op    string `validate:"omitempty,oneof=reclaim upgrade"`
	Count int    `validate:"min=0"`
}

func TestValidator_UID(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		uid     string
		wantErr bool
	}{
		{"numeric chat id", "123456789", false},
		{"qq style id", "u_42-group:7", false},
		{"unicode", "农场主", false},
		{"max length", strings.Repeat("a", 64), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"inner space", "a b", true},
		{"newline", "a\nb", true},
		{"control", "a\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(testRequest{UID: tt.uid})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()
	v := GetValidator()

	err := v.ValidateStruct(testRequest{UID: "a b", Name: "far too long", Op: "sell", Count: -1})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Invalid user ID", fields["uid"])
	assert.Equal(t, "Must be at most 8", fields["name"])
	assert.Equal(t, "Must be one of: reclaim upgrade", fields["op"])
	assert.Equal(t, "Must be at least 0", fields["count"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}

func TestValidator_ValidateVar(t *testing.T) {
	v := GetValidator()
	assert.NoError(t, v.ValidateVar("alice", uidTag))
	assert.Error(t, v.ValidateVar("", uidTag))
}
