package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bizdir/edgegate/internal/core/popup"
	"github.com/bizdir/edgegate/internal/core/routing"
	"github.com/bizdir/edgegate/internal/shell/catalog"
	"github.com/bizdir/edgegate/internal/shell/session"
	"github.com/bizdir/edgegate/internal/shell/store"
	"github.com/bizdir/edgegate/internal/shell/upstream"
	"github.com/bizdir/edgegate/internal/shell/web"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitDatabaseError   = 2
	ExitSessionError    = 3
	ExitHTTPServerError = 4
)

// =============================================================================
// Server
// =============================================================================

// Server represents the edgegate application server.
type Server struct {
	config     *Config
	httpServer *http.Server
	store      store.Store
	sessStore  session.Store
	sessions   *web.Manager
	upstream   *upstream.Client
	logger     *slog.Logger

	janitorStop chan struct{}
	janitorDone chan struct{}
}

// NewServer creates a new server with the given config.
func NewServer(cfg *Config, logger *slog.Logger) (*Server, error) {
	// Connect to the lead audit database
	st, err := store.NewSQLiteStore(cfg.Database.DSN)
	if err != nil {
		return nil, &ServerError{
			Op:       "NewServer",
			Err:      err,
			ExitCode: ExitDatabaseError,
		}
	}

	// Session store: redis when configured, in-process memory otherwise
	var sessStore session.Store
	if cfg.Redis.Enabled {
		rs, err := session.NewRedisStore(context.Background(), session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			st.Close()
			return nil, &ServerError{
				Op:       "NewServer",
				Err:      err,
				ExitCode: ExitSessionError,
			}
		}
		sessStore = rs
		logger.Info("using redis session store", "addr", cfg.Redis.Addr)
	} else {
		sessStore = session.NewMemoryStore(cfg.Redis.TTL)
		logger.Info("using in-memory session store")
	}

	// Backend API client
	client := upstream.NewClient(upstream.Config{
		BaseURL:          cfg.Upstream.BaseURL,
		Timeout:          cfg.Upstream.Timeout,
		RetryCount:       cfg.Upstream.RetryCount,
		RetryWaitTime:    cfg.Upstream.RetryWaitTime,
		RetryMaxWaitTime: cfg.Upstream.RetryMaxWaitTime,
	}, logger)

	// Category catalog
	var provider catalog.Provider
	switch cfg.Catalog.Source {
	case "file":
		fp, err := catalog.NewFileProvider(cfg.Catalog.Path)
		if err != nil {
			sessStore.Close()
			st.Close()
			return nil, &ServerError{
				Op:       "NewServer",
				Err:      err,
				ExitCode: ExitConfigError,
			}
		}
		provider = fp
		logger.Info("using file catalog", "path", cfg.Catalog.Path)
	default:
		provider = catalog.NewUpstreamProvider(client, cfg.Catalog.TTL, logger)
		logger.Info("using upstream catalog", "ttl", cfg.Catalog.TTL)
	}

	// Visitor sessions and popup scheduling
	sessions := web.NewManager(sessStore, popup.Config{
		Delay:  cfg.Popup.Delay,
		Logger: logger,
	}, logger)

	// HTTP handler with the subdomain router in front, so rewrites land
	// before route matching
	handler := web.NewHandler(web.Config{
		Catalog:  provider,
		Leads:    client,
		Store:    st,
		Sessions: sessions,
		Logger:   logger,
	})
	router := routing.NewRouter(cfg.Domain.BaseDomain)
	routed := web.Subdomain(router, logger)(handler.Routes())

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      routed,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:      cfg,
		httpServer:  httpServer,
		store:       st,
		sessStore:   sessStore,
		sessions:    sessions,
		upstream:    client,
		logger:      logger,
		janitorStop: make(chan struct{}),
		janitorDone: make(chan struct{}),
	}, nil
}

// Start starts the server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start the session janitor in background
	go s.runJanitor()

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server",
			"address", s.config.Server.Address(),
			"base_domain", s.config.Domain.BaseDomain)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		return &ServerError{
			Op:       "Start",
			Err:      err,
			ExitCode: ExitHTTPServerError,
		}
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown(context.Background())
}

// runJanitor periodically tears down idle popup schedulers and expired
// in-memory session entries.
func (s *Server) runJanitor() {
	defer close(s.janitorDone)

	interval := s.config.Sessions.PurgeInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.sessions.PurgeIdle(s.config.Sessions.MaxIdle); n > 0 {
				s.logger.Debug("purged idle sessions", "count", n)
			}
			if ms, ok := s.sessStore.(*session.MemoryStore); ok {
				ms.Purge()
			}
		case <-s.janitorStop:
			return
		}
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating graceful shutdown")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	// Stop the session janitor
	close(s.janitorStop)
	<-s.janitorDone

	// Cancel any pending popup timers
	s.sessions.PurgeIdle(0)

	// Close session store
	if err := s.sessStore.Close(); err != nil {
		s.logger.Error("session store close error", "error", err)
	}

	// Close backend client
	if err := s.upstream.Close(); err != nil {
		s.logger.Error("backend client close error", "error", err)
	}

	// Close database
	if err := s.store.Close(); err != nil {
		s.logger.Error("database close error", "error", err)
	}

	s.logger.Info("shutdown complete")
	return nil
}

// =============================================================================
// Server Error
// =============================================================================

// ServerError represents an error during server operation.
type ServerError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *ServerError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
