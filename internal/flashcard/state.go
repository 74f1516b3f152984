package flashcard

import (
	"math"
	"time"
)

// CardState is the scheduler's memory of one (user, card) pair. It is a plain
// value: Apply returns a new CardState and never touches the one passed in.
type CardState struct {
	Stability        float64   `json:"stability"`  // days
	Difficulty       float64   `json:"difficulty"` // 1 (easy) .. 10 (hard)
	LastReview       time.Time `json:"last_review"`
	LapseCount       int       `json:"lapse_count"`
	ConsecutiveFails int       `json:"consecutive_fails"`
	Phase            Phase     `json:"phase"`
}

// Reviewed reports whether the card has been rated at least once.
func (s CardState) Reviewed() bool {
	return !s.LastReview.IsZero()
}

// Validate reports the first field that breaks the CardState invariants.
// Storage uses it to flag legacy rows; the scheduler itself normalizes.
func (s CardState) Validate() error {
	switch {
	case math.IsNaN(s.Stability) || math.IsInf(s.Stability, 0) || s.Stability <= 0:
		return &InvalidStateError{Field: "stability", Value: s.Stability}
	case math.IsNaN(s.Difficulty) || s.Difficulty < MinDifficulty || s.Difficulty > MaxDifficulty:
		return &InvalidStateError{Field: "difficulty", Value: s.Difficulty}
	case s.LapseCount < 0:
		return &InvalidStateError{Field: "lapse_count", Value: s.LapseCount}
	case s.ConsecutiveFails < 0:
		return &InvalidStateError{Field: "consecutive_fails", Value: s.ConsecutiveFails}
	case !s.Phase.IsValid():
		return &InvalidStateError{Field: "phase", Value: int(s.Phase)}
	}
	return nil
}

// ReviewEvent is the per-call input derived from a CardState, the chosen
// rating and the current time. It has no identity and is never stored.
type ReviewEvent struct {
	Rating                Rating
	Now                   time.Time
	ElapsedDays           float64
	// ScheduledIntervalDays is the interval the current stability solves to
	// at the target retention. It is derived, not the interval that was
	// actually applied: preset and relearn intervals are not recorded.
	ScheduledIntervalDays float64
	LapseCount            int
	ConsecutiveFails      int
}

// elapsedDays is the time since the last review, floored at zero.
func elapsedDays(s CardState, now time.Time) float64 {
	if !s.Reviewed() {
		return 0
	}
	return math.Max(0, durationToDays(now.Sub(s.LastReview)))
}
