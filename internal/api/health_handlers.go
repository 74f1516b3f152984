package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/logger"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns a readiness probe: 200 when the database answers a
// ping, otherwise a 503 UNAVAILABLE error body.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := s.checkDatabase(r.Context()); err != nil {
		handleError(w, r, errors.NewUnavailableError("database", err))
		return
	}

	if s.LedgerQueue != nil {
		completed, failed := s.LedgerQueue.Stats()
		log.Debug("ledger queue: pending=%d completed=%d failed=%d", s.LedgerQueue.QueueSize(), completed, failed)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func (s *Server) checkDatabase(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.DB.Ping(ctx)
}
