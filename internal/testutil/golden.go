package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GoldenPath returns testdata/<name>.golden relative to the test's package.
func GoldenPath(name string) string {
	return filepath.Join("testdata", name+".golden")
}

// Golden compares output against a golden file.
// If the GOLDEN_UPDATE environment variable is set, updates the golden file.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	goldenPath := GoldenPath(name)

	if os.Getenv("GOLDEN_UPDATE") != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o755), "create testdata dir")
		require.NoError(t, os.WriteFile(goldenPath, got, 0o644), "update golden file")
		return
	}

	want, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "read golden file %s; got:\n%s", goldenPath, got)

	assert.Equal(t, string(want), string(got), "output mismatch for %s", name)
}

// GoldenString is like Golden but takes a string.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}
