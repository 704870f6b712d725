// Package server exposes the converter as an HTTP service.
//
// Every request is an independent conversion: handlers share only the
// runner (cache included), the layout store, and the configured variable
// overrides, all of which are safe for concurrent use.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridkz/pkg/convert"
	"github.com/matzehuels/gridkz/pkg/store"
)

// maxBodySize caps request bodies. Grid templates are small text files;
// anything near this limit is not one.
const maxBodySize = 1 << 20

// defaultListLimit bounds GET /v1/layouts when no limit is given.
const defaultListLimit = 50

// Options configures a Server.
type Options struct {
	// Runner performs conversions. A nil runner gets NewRunner defaults
	// (no caching).
	Runner *convert.Runner

	// Store persists layouts for the /v1/layouts endpoints. Defaults to
	// an in-memory store.
	Store store.Store

	// Vars are server-wide variable overrides applied to every request;
	// request-level vars win on conflict.
	Vars map[string]float64

	// Padding is the default zone padding for requests that don't set one.
	Padding int

	Logger *log.Logger
}

// Server is the HTTP front end. It implements http.Handler.
type Server struct {
	runner  *convert.Runner
	store   store.Store
	vars    map[string]float64
	padding int
	logger  *log.Logger
	router  chi.Router
}

// New assembles the server and its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = convert.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}

	s := &Server{
		runner:  opts.Runner,
		store:   opts.Store,
		vars:    opts.Vars,
		padding: opts.Padding,
		logger:  opts.Logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Post("/layouts", s.handleCreateLayout)
		r.Get("/layouts", s.handleListLayouts)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Delete("/layouts/{id}", s.handleDeleteLayout)
	})

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
