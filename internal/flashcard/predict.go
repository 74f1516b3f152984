package flashcard

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// PredictedOutcome is what a rating would produce if it were applied now.
type PredictedOutcome struct {
	Rating Rating    `json:"rating"`
	Days   float64   `json:"days"`
	Due    time.Time `json:"due"`
	Label  string    `json:"label"`
}

// Predict dry-runs Apply for every rating. The caller's state is untouched,
// so Predict(state, now)[r].Due always equals the Due of Apply(state, r, now).
func (s *Scheduler) Predict(state CardState, now time.Time) map[Rating]PredictedOutcome {
	out := make(map[Rating]PredictedOutcome, len(AllRatings))
	for _, r := range AllRatings {
		res, err := s.Apply(state, r, now)
		if err != nil {
			continue
		}
		out[r] = PredictedOutcome{
			Rating: r,
			Days:   res.IntervalDays,
			Due:    res.Due,
			Label:  HumanizeInterval(now, res.Due),
		}
	}
	return out
}

// PredictFast is a display shortcut for REVIEW cards: Hard and Easy are
// derived from the Good interval (×0.5 and ×2), each floored at one day.
// Other phases, and Again, fall back to Predict.
func (s *Scheduler) PredictFast(state CardState, now time.Time) map[Rating]PredictedOutcome {
	out := s.Predict(state, now)
	if s.Normalize(state).Phase != PhaseReview {
		return out
	}
	good := out[Good].Days
	for r, mult := range map[Rating]float64{Hard: 0.5, Good: 1, Easy: 2} {
		days := math.Max(1, good*mult)
		due := now.Add(daysToDuration(days))
		out[r] = PredictedOutcome{Rating: r, Days: days, Due: due, Label: HumanizeInterval(now, due)}
	}
	return out
}

// HumanizeInterval renders the gap between now and due, e.g. "10 minutes from now".
func HumanizeInterval(now, due time.Time) string {
	return humanize.RelTime(due, now, "ago", "from now")
}
