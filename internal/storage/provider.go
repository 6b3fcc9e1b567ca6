// Package storage implements the host-provided persistent blob storage
// the tracker saves its whole store into.
package storage

import "github.com/starford/jera/internal/models"

// Provider is the interface for whole-store blob persistence.
type Provider interface {
	// Load returns the persisted store data, or nil when nothing has
	// been saved yet.
	Load() (*models.StoreData, error)
	// Save serializes and durably writes the whole store.
	Save(data *models.StoreData) error
	// Close releases any underlying resources.
	Close() error
}

// Verify backends satisfy Provider at compile time.
var (
	_ Provider = (*File)(nil)
	_ Provider = (*SQLite)(nil)
)
