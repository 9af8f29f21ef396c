// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// Fixture returns the path of a sample project relative to the current
// working directory, so report paths stay stable across checkouts.
func Fixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("..", "..", "internal", "integration", "testdata", name)
	require.DirExists(t, path)
	return path
}
