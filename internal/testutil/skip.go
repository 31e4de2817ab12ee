// Package testutil provides testing utilities.
package testutil

import (
	"os"
	"testing"
)

// SkipNetworkTests skips tests that call HowLongToBeat or the Steam Store
// unless RUN_NETWORK_TESTS is set. They are always skipped with -short.
//
// Run them with: RUN_NETWORK_TESTS=1 go test ./...
func SkipNetworkTests(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping network test in -short mode")
	}
	if os.Getenv("RUN_NETWORK_TESTS") == "" {
		t.Skip("Skipping network test (set RUN_NETWORK_TESTS=1 to run)")
	}
}
