// Package testutil provides shared test helpers for setting up
// providers and stores.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/jera/internal/habitstore"
	"github.com/starford/jera/internal/storage"
)

// TestProvider creates a file-backed provider in a temporary directory
// that is automatically cleaned up.
func TestProvider(t *testing.T) *storage.File {
	t.Helper()
	provider, err := storage.NewFile(filepath.Join(t.TempDir(), "jera.json"))
	if err != nil {
		t.Fatal(err)
	}
	return provider
}

// TestStore creates an empty store over a temporary file provider.
func TestStore(t *testing.T) *habitstore.Store {
	t.Helper()
	store, err := habitstore.Open(TestProvider(t))
	if err != nil {
		t.Fatal(err)
	}
	return store
}
