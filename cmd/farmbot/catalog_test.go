package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCatalogValidate_Embedded(t *testing.T) {
	out, err := runCLI(t, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded catalog: OK")
	assert.Contains(t, out, "digest:")
}

func TestCatalogValidate_File(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte(`
version = 1

[[crops]]
id = "carrot"
name = "Carrot"
growth_seconds = 60
yield_amount = 2
buy_price = 10
sell_price = 3
`), 0o644))

	out, err := runCLI(t, "catalog", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "good.toml: OK")
	assert.Contains(t, out, "crops:     1")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("crops: [{id: carrot, name: Carrot, mystery: 1}]\n"), 0o644))

	_, err = runCLI(t, "catalog", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")

	_, err = runCLI(t, "catalog", "validate", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
