package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/havanahub/investors/internal/config"
	"github.com/havanahub/investors/internal/server"
	"github.com/havanahub/investors/internal/storage"
	"github.com/havanahub/investors/pkg/logging"
)

func main() {
	cfg, err := config.LoadFromEnv("")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg)
	if err != nil {
		if errors.Is(err, storage.ErrCorrupt) {
			slog.Error("Stored ledger is not valid JSON; fix or remove it before starting",
				"driver", cfg.Storage.Driver, "key", cfg.Storage.Key, "error", err)
		} else {
			slog.Error("Failed to initialize server", "error", err)
		}
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
