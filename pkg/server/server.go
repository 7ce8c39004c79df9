// Package server provides the HTTP server of the courier relay.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"mercator-hq/courier/pkg/config"
	"mercator-hq/courier/pkg/normalize"
	"mercator-hq/courier/pkg/proxy/handlers"
	"mercator-hq/courier/pkg/proxy/middleware"
	"mercator-hq/courier/pkg/telemetry/metrics"
	"mercator-hq/courier/pkg/telemetry/tracing"
)

// RelayPath is the single relay endpoint.
const RelayPath = "/api/twitter/proxy"

// Dependencies are the collaborators the server routes to.
type Dependencies struct {
	// Relay executes envelopes. Required.
	Relay handlers.Relay

	// Metrics is optional; nil disables /metrics.
	Metrics *metrics.Collector

	// Tracer is optional
	Tracer *tracing.Tracer

	// Version is reported by the health endpoint
	Version string
}

// Server is the relay HTTP server.
type Server struct {
	config       *config.Config
	deps         Dependencies
	httpServer   *http.Server
	listener     net.Listener
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new relay server. cfg is treated as immutable.
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	return &Server{
		config:       cfg,
		deps:         deps,
		shutdownChan: make(chan struct{}),
		isRunning:    false,
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled, Stop is
// called or the listener fails. Signal handling belongs to the caller
// (see cli.SetupSignalHandler).
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.Proxy.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.Proxy.ListenAddress, err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:        s.setupRoutes(),
		ReadTimeout:    s.config.Proxy.ReadTimeout,
		WriteTimeout:   s.config.Proxy.WriteTimeout,
		IdleTimeout:    s.config.Proxy.IdleTimeout,
		MaxHeaderBytes: s.config.Proxy.MaxHeaderBytes,
	}
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting relay server",
			"address", listener.Addr().String(),
			"metrics_enabled", s.metricsEnabled(),
			"tracing_enabled", s.deps.Tracer.Enabled(),
		)

		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop asks a running Start to shut down.
func (s *Server) Stop() {
	select {
	case <-s.shutdownChan:
	default:
		close(s.shutdownChan)
	}
}

// Shutdown gracefully shuts down the server, draining in-flight requests
// for at most the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Proxy.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Proxy.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("relay server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
//
// Unrouted paths and methods fall through to the "/" pattern and get the
// fixed not-found body rather than the mux's 405.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	relay := handlers.NewRelayHandler(handlers.RelayConfig{
		Relay:        s.deps.Relay,
		MaxBodyBytes: s.config.Proxy.MaxBodyBytes,
		Errors: normalize.Options{
			URLMaxLength:     s.config.Errors.URLMaxLength,
			RawBodyMaxLength: s.config.Errors.RawBodyMaxLength,
		},
		Metrics: s.deps.Metrics,
	})

	mux.Handle("POST "+RelayPath, middleware.AuthMiddleware(s.config.Auth.Token)(relay))

	if s.config.Telemetry.Health.IsEnabled() {
		mux.Handle("GET "+s.config.Telemetry.Health.LivenessPath, handlers.NewHealthHandler(s.deps.Version))
	}

	if s.metricsEnabled() {
		mux.Handle("GET "+s.config.Telemetry.Metrics.Path, s.deps.Metrics.Handler())
	}

	mux.HandleFunc("/", handlers.NotFound)

	var handler http.Handler = mux

	// Probe traffic is logged at debug
	handler = middleware.Logging(s.config.Telemetry.Health.LivenessPath, s.config.Telemetry.Metrics.Path)(handler)

	// Request ID middleware
	handler = middleware.RequestIDMiddleware(handler)

	// Tracing middleware
	handler = tracing.HTTPMiddleware(s.deps.Tracer)(handler)

	// Recovery middleware (outermost)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

func (s *Server) metricsEnabled() bool {
	return s.deps.Metrics != nil && s.config.Telemetry.Metrics.IsEnabled()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
