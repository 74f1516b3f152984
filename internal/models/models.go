package models

import (
	"fmt"
	"time"

	"github.com/vytor/vocabflash/internal/flashcard"
)

// CardKey identifies one learner's memory of one vocabulary item.
type CardKey struct {
	UserID  int64 `json:"user_id"`
	VocabID int64 `json:"vocab_id"`
}

func (k CardKey) String() string {
	return fmt.Sprintf("%d/%d", k.UserID, k.VocabID)
}

// CardRecord is a persisted CardState with its placement and due time.
type CardRecord struct {
	UserID    int64               `json:"user_id"`
	VocabID   int64               `json:"vocab_id"`
	DeckID    int64               `json:"deck_id"`
	State     flashcard.CardState `json:"state"`
	DueAt     time.Time           `json:"due_at"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (r CardRecord) Key() CardKey {
	return CardKey{UserID: r.UserID, VocabID: r.VocabID}
}

// DueFilter selects cards whose due time is at or before Before.
// DeckID 0 means every deck.
type DueFilter struct {
	UserID int64
	DeckID int64
	Before time.Time
	Limit  int
}

// ReviewLog is one append-only ledger entry. Phase, stability, difficulty
// and retrievability are captured both before and after the rating.
type ReviewLog struct {
	ID                   string           `json:"id"`
	UserID               int64            `json:"user_id"`
	VocabID              int64            `json:"vocab_id"`
	DeckID               int64            `json:"deck_id"`
	Rating               flashcard.Rating `json:"rating"`
	PhaseBefore          flashcard.Phase  `json:"phase_before"`
	PhaseAfter           flashcard.Phase  `json:"phase_after"`
	ReviewedAt           time.Time        `json:"reviewed_at"`
	StabilityBefore      float64          `json:"stability_before"`
	StabilityAfter       float64          `json:"stability_after"`
	DifficultyBefore     float64          `json:"difficulty_before"`
	DifficultyAfter      float64          `json:"difficulty_after"`
	RetrievabilityBefore float64          `json:"retrievability_before"`
	ElapsedDays          float64          `json:"elapsed_days"`
	IntervalDays         float64          `json:"interval_days"`
}

// CardView is a card as presented to clients: state plus derived values.
// IsDue follows DueAt, the same due time the due listing filters on.
type CardView struct {
	CardRecord
	Retrievability float64                                         `json:"retrievability"`
	IsDue          bool                                            `json:"is_due"`
	DueIn          string                                          `json:"due_in"`
	Predictions    map[flashcard.Rating]flashcard.PredictedOutcome `json:"predictions"`
}

// ReviewOutcome is what a successful review returns.
type ReviewOutcome struct {
	Card         CardRecord       `json:"card"`
	Rating       flashcard.Rating `json:"rating"`
	IntervalDays float64          `json:"interval_days"`
	DueIn        string           `json:"due_in"`
	ReviewedAt   time.Time        `json:"reviewed_at"`
}
