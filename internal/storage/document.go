package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/havanahub/investors/internal/models"
)

// Ensure DocumentStore implements Store
var _ Store = (*DocumentStore)(nil)

// DocumentStore keeps the ledger document as one JSON blob under a fixed key
// of a KV backend.
type DocumentStore struct {
	kv  KV
	key string
}

// NewDocumentStore wraps kv. An empty key selects DefaultKey.
func NewDocumentStore(kv KV, key string) *DocumentStore {
	if key == "" {
		key = DefaultKey
	}
	return &DocumentStore{kv: kv, key: key}
}

// Key returns the key the document is stored under.
func (s *DocumentStore) Key() string {
	return s.key
}

// Load reads and decodes the stored document, initializing it on first use.
func (s *DocumentStore) Load(ctx context.Context) (*models.Document, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		doc := models.NewDocument()
		if err := s.Save(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to initialize document: %w", err)
		}
		slog.Info("Initialized empty document", "key", s.key)
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return Decode(raw)
}

// Save encodes doc and overwrites the stored blob.
func (s *DocumentStore) Save(ctx context.Context, doc *models.Document) error {
	raw, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Close closes the underlying backend.
func (s *DocumentStore) Close() error {
	return s.kv.Close()
}

// Encode serializes a document in its compact stored form.
func Encode(doc *models.Document) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return raw, nil
}

// Decode parses a stored blob. Any failure wraps ErrCorrupt.
func Decode(raw []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	doc.Normalize()
	return &doc, nil
}
