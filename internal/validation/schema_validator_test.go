package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCatalog = `{
	"crops": [
		{"id": "carrot", "name": "Carrot", "growth_seconds": 3600, "yield_amount": 10}
	]
}`

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{
			name: "minimal catalog",
			data: minimalCatalog,
		},
		{
			name:      "crop without id",
			data:      `{"crops": [{"name": "Carrot", "growth_seconds": 3600, "yield_amount": 10}]}`,
			wantError: true,
			errorMsg:  "required",
		},
		{
			name:      "unknown top-level key",
			data:      `{"crops": [{"id": "a", "name": "A", "growth_seconds": 1, "yield_amount": 1}], "weather": {}}`,
			wantError: true,
			errorMsg:  "additionalProperties",
		},
		{
			name:      "wrong type",
			data:      `{"crops": [{"id": "a", "name": "A", "growth_seconds": "soon", "yield_amount": 1}]}`,
			wantError: true,
			errorMsg:  "/crops/0/growth_seconds",
		},
		{
			name:      "cap percent above 100",
			data:      `{"theft": {"cap_percent": 150}, "crops": [{"id": "a", "name": "A", "growth_seconds": 1, "yield_amount": 1}]}`,
			wantError: true,
			errorMsg:  "/theft/cap_percent",
		},
		{
			name:      "invalid JSON",
			data:      `{"crops": }`,
			wantError: true,
			errorMsg:  "parse JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), CatalogSchema)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ValidateDocument(t *testing.T) {
	v := NewSchemaValidator()

	doc := map[string]interface{}{
		"economy": map[string]interface{}{"initial_currency": int64(500)},
		"crops": []interface{}{
			map[string]interface{}{"id": "carrot", "name": "Carrot", "growth_seconds": 3600, "yield_amount": 10},
		},
	}
	assert.NoError(t, v.ValidateDocument(doc, CatalogSchema))

	doc["economy"] = map[string]interface{}{"initial_currency": -1}
	err := v.ValidateDocument(doc, CatalogSchema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/economy/initial_currency")
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalCatalog), 0644))

	assert.NoError(t, v.ValidateFile(path, CatalogSchema))

	err := v.ValidateFile(filepath.Join(t.TempDir(), "missing.json"), CatalogSchema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	err := NewSchemaValidator().ValidateBytes([]byte(`{}`), "nope.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}
