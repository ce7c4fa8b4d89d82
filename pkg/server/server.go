// Package server exposes the JSON/HTTP API that drives browser
// sessions against the range-builder page: create a session, poll its
// status, apply filter clicks, close it.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/entrhq/rangewizard/pkg/browser"
	"github.com/entrhq/rangewizard/pkg/logging"
	"github.com/entrhq/rangewizard/pkg/rangebuilder"
)

// SessionRegistry provides access to browser session management.
// Implemented by browser.SessionManager.
type SessionRegistry interface {
	CreateSession() browser.SessionInfo
	GetSession(id string) (*browser.Session, bool)
	GetSessionInfo(id string) (browser.SessionInfo, bool)
	ListSessions() []browser.SessionInfo
	CloseSession(id string) error
}

// RangeExecutor applies a filter request to a live page. Implemented by
// rangebuilder.Executor.
type RangeExecutor interface {
	Apply(page rangebuilder.PageActor, req *rangebuilder.Request) (*rangebuilder.Result, error)
}

// Config controls the HTTP server behavior.
type Config struct {
	// BindAddress is the host:port to listen on.
	BindAddress string

	// Version is reported by the liveness banner.
	Version string
}

// Server hosts the JSON/HTTP API.
type Server struct {
	cfg        Config
	registry   SessionRegistry
	executor   RangeExecutor
	log        *logging.Logger
	httpServer *http.Server
}

// NewServer constructs a server bound to the provided registry and
// executor. A nil logger falls back to a discard logger.
func NewServer(cfg Config, registry SessionRegistry, executor RangeExecutor, log *logging.Logger) *Server {
	if cfg.BindAddress == "" {
		cfg.BindAddress = "127.0.0.1:8000"
	}
	if log == nil {
		log = logging.NewDiscardLogger("server")
	}
	return &Server{
		cfg:      cfg,
		registry: registry,
		executor: executor,
		log:      log,
	}
}

// Routes builds the HTTP router. Exposed so tests can mount it without
// binding a listener.
func (s *Server) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/", s.handleRoot)
	router.Get("/healthz", s.handleHealthz)
	router.Post("/create", s.handleCreate)
	router.Post("/get-range", s.handleGetRange)
	router.Get("/sessions", s.handleListSessions)
	router.Get("/sessions/{sessionID}", s.handleGetSession)
	router.Delete("/sessions/{sessionID}", s.handleDeleteSession)

	return router
}

// Start runs the HTTP server until the context is cancelled, then
// shuts it down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.BindAddress,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	s.log.Infof("listening on %s", s.cfg.BindAddress)

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
