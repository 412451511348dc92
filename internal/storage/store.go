// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/havanahub/investors/internal/models"
)

// DefaultKey is the fixed key the ledger document is stored under.
const DefaultKey = "havana_investor_v1"

var (
	// ErrCorrupt is returned when the stored blob cannot be decoded.
	ErrCorrupt = errors.New("stored document is corrupt")

	// ErrNotFound is returned by a KV backend when the key has no value.
	ErrNotFound = errors.New("key not found")
)

// Store defines the interface for document storage operations.
// The whole document is read and written at once; there are no partial
// writes and no schema versions.
type Store interface {
	// Load returns the stored document. When nothing is stored yet an empty
	// document is persisted and returned.
	// Returns an error wrapping ErrCorrupt if the stored blob is not a document.
	Load(ctx context.Context) (*models.Document, error)

	// Save overwrites the stored document.
	Save(ctx context.Context, doc *models.Document) error

	// Close releases any resources held by the store.
	Close() error
}

// KV is a minimal key-value backend holding opaque blobs.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// Redis, plain files) without changing the document handling.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the backend.
	Close() error
}
