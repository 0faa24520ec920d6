package sqlite

import (
	"testing"

	"github.com/oakridgedental/clinichub/pkg/types"
)

// newTestBackend attaches a backend to a fresh temp directory and registers
// cleanup.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	b := NewBackend()
	config := types.Config{
		DataDir:    t.TempDir(),
		ListenAddr: types.DefaultListenAddr,
	}
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b
}

// mustInsert inserts a row or fails the test.
func mustInsert(t *testing.T, b *Backend, table string, payload types.Record) int64 {
	t.Helper()

	id, _, err := b.InsertRow(table, payload)
	if err != nil {
		t.Fatalf("InsertRow(%s) failed: %v", table, err)
	}
	return id
}
