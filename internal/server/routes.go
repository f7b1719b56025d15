package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(s.metrics.Middleware)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListVisible)
			r.Post("/", s.handleCreateTask)
			r.Get("/all", s.handleListAll)
			r.Post("/complete-all", s.handleCompleteAll)
			r.Delete("/completed", s.handleClearCompleted)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTask)
				r.Put("/", s.handleUpdateTask)
				r.Delete("/", s.handleDeleteTask)
				r.Patch("/status", s.handleSetStatus)
			})
		})

		r.Get("/query", s.handleGetQuery)
		r.Put("/query", s.handleUpdateQuery)
		r.Post("/query/reset", s.handleResetQuery)

		r.Get("/stats", s.handleStats)
		r.Get("/state", s.handleState)
		r.Post("/appearance/toggle", s.handleToggleAppearance)
	})

	return r
}
