// Package server assembles the HTTP server from configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/havanahub/investors/internal/auth"
	"github.com/havanahub/investors/internal/config"
	"github.com/havanahub/investors/internal/ledger"
	"github.com/havanahub/investors/internal/metrics"
	"github.com/havanahub/investors/internal/middleware"
	"github.com/havanahub/investors/internal/models"
	"github.com/havanahub/investors/internal/notify"
	"github.com/havanahub/investors/internal/render"
	"github.com/havanahub/investors/internal/service"
	"github.com/havanahub/investors/internal/storage"
	"github.com/havanahub/investors/internal/storage/backend"
	"github.com/havanahub/investors/internal/web"
	"github.com/havanahub/investors/pkg/api/apiconnect"
)

const shutdownTimeout = 10 * time.Second

// Server owns the ledger, the websocket hub and the HTTP handler tree.
type Server struct {
	cfg     *config.Config
	store   storage.Store
	hub     *notify.Hub
	metrics *metrics.Metrics
	handler http.Handler
}

// New opens storage, loads the ledger and wires every route.
// A corrupt stored document is returned as storage.ErrCorrupt.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	store, err := backend.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	s, err := NewWithStore(ctx, cfg, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	return s, nil
}

// NewWithStore is New over an already opened store.
func NewWithStore(ctx context.Context, cfg *config.Config, store storage.Store) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		store:   store,
		metrics: metrics.New(),
	}
	formatter := render.NewFormatter(cfg.Display.Currency)

	var view func() render.Dashboard
	s.hub = notify.NewHub(func() any { return view() })

	l, err := ledger.Open(ctx, store,
		ledger.WithHook(s.metrics.Hook),
		ledger.WithHook(func(op ledger.Op, doc *models.Document, err error) {
			if err != nil {
				return
			}
			if perr := s.hub.Publish(notify.SummaryType, view()); perr != nil {
				slog.Warn("Failed to publish update", "op", op, "error", perr)
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	s.metrics.Observe(l.Document())

	authEnabled := cfg.Auth.Enabled()
	pages, err := web.New(l, formatter, authEnabled)
	if err != nil {
		return nil, err
	}
	view = pages.View

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	svcOpts := []service.Option{service.WithCurrency(formatter.Currency())}
	if authEnabled {
		tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		svcOpts = append(svcOpts, service.WithAuth(auth.NewPassphraseAuthenticator(cfg.Auth.PassphraseHash), tokens))
		interceptors = append([]connect.Interceptor{
			middleware.RequireAuth(tokens,
				apiconnect.InvestorServiceLoginProcedure,
				apiconnect.InvestorServiceGetDashboardProcedure,
			),
		}, interceptors...)
		slog.Info("Operator authentication enabled", "token_ttl", cfg.Auth.TokenTTL)
	}

	mux := http.NewServeMux()
	path, handler := apiconnect.NewInvestorServiceHandler(
		service.NewInvestorService(l, svcOpts...),
		connect.WithInterceptors(interceptors...),
	)
	mux.Handle(path, handler)
	pages.Register(mux)
	mux.HandleFunc("GET /ws", s.hub.ServeWs)
	mux.Handle("GET /metrics", s.metrics.Handler())

	s.handler = middleware.RequestLogger(middleware.CORS(cfg.Server.CORSOrigin)(mux))
	return s, nil
}

// Handler returns the root handler without the h2c wrapper.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub returns the websocket hub.
func (s *Server) Hub() *notify.Hub {
	return s.hub
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.store.Close()

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           h2c.NewHandler(s.handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr, "storage", s.cfg.Storage.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Close releases the store. Run closes it on return.
func (s *Server) Close() error {
	return s.store.Close()
}
