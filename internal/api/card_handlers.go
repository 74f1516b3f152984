package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vytor/vocabflash/internal/errors"
	"github.com/vytor/vocabflash/internal/flashcard"
	"github.com/vytor/vocabflash/internal/logger"
)

// reviewRequest accepts the rating as a number (1..4) or a name ("good").
type reviewRequest struct {
	Rating json.RawMessage `json:"rating"`
	DeckID int64           `json:"deck_id"`
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	userID, vocabID, err := cardIDs(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.ReviewService.Card(r.Context(), userID, vocabID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID, vocabID, err := cardIDs(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	rating, err := flashcard.ParseRating(strings.Trim(string(req.Rating), `"`))
	if err != nil {
		log.Debug("rejecting rating %s: %v", req.Rating, err)
		handleError(w, r, errors.NewValidationError("rating", "must be 1-4 or again, hard, good, easy"))
		return
	}

	out, err := s.ReviewService.Review(r.Context(), userID, vocabID, req.DeckID, rating)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, vocabID, err := cardIDs(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}

	entries, err := s.ReviewService.History(r.Context(), userID, vocabID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleResetCard(w http.ResponseWriter, r *http.Request) {
	userID, vocabID, err := cardIDs(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ReviewService.Reset(r.Context(), userID, vocabID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	deckID, err := queryInt(r, "deck_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.ReviewService.DueCards(r.Context(), userID, int64(deckID), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"cards": cards, "count": len(cards)})
}
