// Package helpers provides shared test fixtures.
package helpers

import (
	"testing"

	"github.com/automate-formation/orchestrator/store"
)

// NewTestSQLiteStore returns a migrated in-memory store, closed when the
// test ends.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:", "test-secret")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
