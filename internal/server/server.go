// Package server exposes the task store as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Captain-Vikram/To-Do-List/store"
)

// Options configures the HTTP view.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// CORSOrigins lists allowed browser origins; "*" allows any.
	CORSOrigins []string
	Logger      *slog.Logger
	Version     string
}

type Server struct {
	store   store.TaskStore
	log     *slog.Logger
	origins map[string]struct{}
	metrics *Metrics
	version string
	server  *http.Server
}

// New wires the routes for s. The store must already be initialised.
func New(s store.TaskStore, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	origins := make(map[string]struct{}, len(opts.CORSOrigins))
	for _, o := range opts.CORSOrigins {
		origins[o] = struct{}{}
	}

	srv := &Server{
		store:   s,
		log:     opts.Logger,
		origins: origins,
		metrics: NewMetrics(s),
		version: opts.Version,
	}
	srv.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           srv.registerRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
	}
	return srv
}

// Handler returns the root handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves in the background. Errors other than a clean shutdown are
// sent to errChan.
func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.log.Info("api server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
