package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havanahub/investors/internal/config"
)

func TestOpenDrivers(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.StorageConfig
		file string
	}{
		{"sqlite", config.StorageConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "db", "h.db")}, filepath.Join(dir, "db", "h.db")},
		{"file", config.StorageConfig{Driver: config.DriverFile, Path: filepath.Join(dir, "files"), Key: "ledger"}, filepath.Join(dir, "files", "ledger.json")},
		{"redis", config.StorageConfig{Driver: config.DriverRedis, RedisAddr: mr.Addr()}, ""},
		{"memory", config.StorageConfig{Driver: config.DriverMemory}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := Open(ctx, tt.cfg)
			require.NoError(t, err)
			defer store.Close()

			doc, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, doc.Investors)

			if tt.file != "" {
				_, err := os.Stat(tt.file)
				assert.NoError(t, err, "backing file should exist after first load")
			}
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "mongo"})
	assert.Error(t, err)
}
