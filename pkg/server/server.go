// Package server exposes the wordpages pipeline over HTTP.
//
// # Endpoints
//
//	GET  /health               build information and liveness
//	POST /v1/layout            layout document (JSON, or ?format=yaml|csv)
//	POST /v1/render/{format}   rendered artifact (svg, png, pdf or json)
//
// Both POST endpoints take the same JSON body, validated against an embedded
// JSON schema:
//
//	{
//	  "records": ["the cat sat", "on the mat"],
//	  "columns": {"speaker": ["ann", null]},
//	  "options": {"lines_per_page": 1, "carry": ["speaker"], "fill": "speaker"}
//	}
//
// Every response carries an X-Run-ID header; the same ID tags the server's
// log lines for the request. Errors are JSON objects with "error" and "code"
// fields; INVALID_* codes map to 400.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordpages/pkg/pipeline"
)

// Default server settings.
const (
	DefaultAddr        = "127.0.0.1:8080"
	DefaultMaxBodySize = 8 << 20
	shutdownTimeout    = 10 * time.Second
)

// Config holds server configuration.
type Config struct {
	// Addr is the address to listen on (default: 127.0.0.1:8080).
	Addr string
	// Runner executes the pipeline. Nil means a runner without a cache.
	Runner *pipeline.Runner
	// Logger is the structured logger to use.
	Logger *log.Logger
	// MaxBodySize caps request bodies in bytes (default: 8 MiB).
	MaxBodySize int64
}

// Server is the wordpages HTTP server.
type Server struct {
	httpServer  *http.Server
	runner      *pipeline.Runner
	logger      *log.Logger
	maxBodySize int64

	mu      sync.Mutex
	running bool
}

// New creates a Server with the given configuration.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	s := &Server{
		runner:      cfg.Runner,
		logger:      cfg.Logger.WithPrefix("server"),
		maxBodySize: cfg.MaxBodySize,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
