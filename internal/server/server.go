// Package server exposes the statement-of-accounts HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/soa/internal/service"
	"github.com/ledgerline/soa/internal/statement"
)

const (
	serviceName    = "Statement of Accounts API"
	serviceVersion = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

// StoreProvider produces a statement store on demand. It is invoked per
// request so credentials dropped into place after startup are picked up
// without a restart.
type StoreProvider func(ctx context.Context) (service.StatementStore, error)

// Config holds the HTTP server settings.
type Config struct {
	SpreadsheetID string
	Port          int
}

// Server is the statement-of-accounts HTTP API.
type Server struct {
	engine        *gin.Engine
	logger        *slog.Logger
	builder       *statement.Builder
	storeProvider StoreProvider
	config        Config
}

// New assembles the HTTP server with its middleware and routes.
func New(config Config, builder *statement.Builder, provider StoreProvider, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(logger), gin.Recovery())

	s := &Server{
		engine:        engine,
		logger:        logger,
		builder:       builder,
		storeProvider: provider,
		config:        config,
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/check_credentials", s.handleCheckCredentials)
	s.engine.POST("/write_statement/", s.handleWriteStatement)
	s.engine.POST("/append_to_statement/", s.handleAppendToStatement)
	s.engine.GET("/get_statement/", s.handleGetStatement)
}

// Handler returns the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting statement of accounts API",
			"port", s.config.Port,
			"spreadsheet_id", s.config.SpreadsheetID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
