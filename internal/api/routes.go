package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(securityHeaders)
	r.Use(withTimeout(15 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/due", s.handleDueCards)
		r.Route("/cards/{vocabID}", func(r chi.Router) {
			r.Get("/", s.handleGetCard)
			r.Delete("/", s.handleResetCard)
			r.Post("/review", s.handleReview)
			r.Get("/history", s.handleHistory)
		})
	})

	if s.Clock != nil {
		r.Get("/clock", s.handleGetClock)
		r.Put("/clock", s.handleSetClock)
		r.Delete("/clock", s.handleResetClock)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFound(r))
	})
	return r
}
