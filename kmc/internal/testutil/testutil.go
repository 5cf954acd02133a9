// Package testutil provides shared helpers for the kmc test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FixedClock returns a wallclock source pinned to sec, for reproducible
// RNG seeding in tests.
func FixedClock(sec int64) func() int64 {
	return func() int64 { return sec }
}

// WriteTempYAML writes content to a temp file and returns its path.
func WriteTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp yaml: %v", err)
	}
	return path
}
