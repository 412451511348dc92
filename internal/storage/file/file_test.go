package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havanahub/investors/internal/models"
	"github.com/havanahub/investors/internal/storage"
)

func TestGetMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "data"))
	_, err := s.Get(context.Background(), "nothing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutWritesIndentedJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s := New(dir)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "doc", []byte(`{"investors":[],"payouts":[]}`)))

	raw, err := os.ReadFile(filepath.Join(dir, "doc.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"investors\": [],\n  \"payouts\": []\n}", string(raw))

	got, err := s.Get(ctx, "doc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"investors":[],"payouts":[]}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestPutRawValue(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "plain", []byte("not json")))
	got, err := s.Get(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, "not json", string(got))
}

func TestInvalidKeys(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, s.Put(ctx, key, []byte("x")), key)
		_, err := s.Get(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	docs := storage.NewDocumentStore(New(t.TempDir()), "")
	ctx := context.Background()

	doc := &models.Document{
		Investors: []models.Investor{{ID: "a", Name: "Ama", Amount: 1000, Date: "2024-01-01", Method: "cash", Returns: 50}},
		Payouts:   []models.Payout{{ID: "p", InvestorID: "a", Amount: 100, Date: "2024-02-01"}},
	}
	require.NoError(t, docs.Save(ctx, doc))

	got, err := docs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}
