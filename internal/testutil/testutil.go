// Package testutil provides shared test helpers for setting up state stores
// and repositories.
package testutil

import (
	"os"
	"testing"

	"github.com/ellard/chrononotes/internal/noterepo"
	"github.com/ellard/chrononotes/internal/store"
)

// TestStore creates a temporary SQLite state store that is automatically
// cleaned up.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "chrononotes-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	s, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestRepository creates a repository backed by a temporary store.
func TestRepository(t *testing.T, opts ...noterepo.Option) *noterepo.Repository {
	t.Helper()
	return noterepo.New(TestStore(t), opts...)
}
