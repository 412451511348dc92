// Package backend opens the document store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/havanahub/investors/internal/config"
	"github.com/havanahub/investors/internal/storage"
	"github.com/havanahub/investors/internal/storage/file"
	"github.com/havanahub/investors/internal/storage/postgres"
	"github.com/havanahub/investors/internal/storage/redis"
	"github.com/havanahub/investors/internal/storage/sqlite"
)

// Open connects the configured KV backend and wraps it in a DocumentStore.
func Open(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	var (
		kv  storage.KV
		err error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		kv, err = sqlite.New(cfg.Path)
	case config.DriverPostgres:
		kv, err = postgres.New(ctx, cfg.DSN)
	case config.DriverRedis:
		kv, err = redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.DriverFile:
		kv = file.New(cfg.Path)
	case config.DriverMemory:
		kv = storage.NewMemoryKV()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Driver, err)
	}

	slog.Debug("Storage opened", "driver", cfg.Driver, "key", cfg.Key)
	return storage.NewDocumentStore(kv, cfg.Key), nil
}
