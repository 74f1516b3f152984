package api

import (
	"net/http"
	"time"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/logger"
)

type clockResponse struct {
	Now       time.Time `json:"now"`
	Simulated bool      `json:"simulated"`
}

// setClockRequest takes exactly one of Now (RFC 3339) or Advance ("36h").
type setClockRequest struct {
	Now     *time.Time `json:"now"`
	Advance string     `json:"advance"`
}

func (s *Server) clockState() clockResponse {
	return clockResponse{Now: s.Clock.Now(), Simulated: s.Clock.IsSet()}
}

func (s *Server) handleGetClock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.clockState())
}

func (s *Server) handleSetClock(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req setClockRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	switch {
	case req.Now != nil && req.Advance != "":
		handleError(w, r, errors.NewValidationError("clock", "set either now or advance, not both"))
		return
	case req.Now != nil:
		s.Clock.Set(*req.Now)
		log.Info("simulated clock set to %s", req.Now.UTC().Format(time.RFC3339))
	case req.Advance != "":
		d, err := time.ParseDuration(req.Advance)
		if err != nil || d < 0 {
			handleError(w, r, errors.NewValidationError("advance", "must be a non-negative duration such as 36h"))
			return
		}
		at := s.Clock.Advance(d)
		log.Info("simulated clock advanced by %v to %s", d, at.Format(time.RFC3339))
	default:
		handleError(w, r, errors.NewValidationError("clock", "now or advance is required"))
		return
	}

	writeJSON(w, r, http.StatusOK, s.clockState())
}

func (s *Server) handleResetClock(w http.ResponseWriter, r *http.Request) {
	s.Clock.Reset()
	logger.FromContext(r.Context()).Info("simulated clock reset to real time")
	writeJSON(w, r, http.StatusOK, s.clockState())
}
