package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havanahub/investors/internal/models"
)

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Put(context.Context, string, []byte) error   { return f.err }
func (f failingKV) Close() error                                { return nil }

func TestDocumentStoreInitializesEmptyDocument(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewDocumentStore(kv, "")

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Investors)
	assert.Empty(t, doc.Payouts)

	raw, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err, "empty document should be persisted on first load")
	assert.JSONEq(t, `{"investors":[],"payouts":[]}`, string(raw))
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(NewMemoryKV(), "custom")

	doc := &models.Document{
		Investors: []models.Investor{
			{ID: "a", Name: "Ama", Amount: 1000, Date: "2024-01-01", Method: "cash", Returns: 50},
			{ID: "b", Name: "Kofi", Amount: 500.25, Date: "2024-02-01", Method: "mobile money"},
		},
		Payouts: []models.Payout{
			{ID: "p1", InvestorID: "a", Amount: 100, Date: "2024-03-01"},
			{ID: "p2", InvestorID: "gone", Amount: 5, Date: "2024-03-02"},
		},
	}

	require.NoError(t, store.Save(ctx, doc))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.Equal(t, "custom", store.Key())
}

func TestDocumentStoreCorruptBlob(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte("{not json")))

	_, err := NewDocumentStore(kv, "").Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDocumentStoreBackendErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	store := NewDocumentStore(failingKV{err: boom}, "")

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCorrupt)

	err = store.Save(ctx, models.NewDocument())
	assert.ErrorIs(t, err, boom)
}
