package flashcard

import (
	"math"
	"time"
)

// Scheduler routes a rating through the NEW/LEARNING → TRANSITION → REVIEW
// lifecycle. It holds only configuration and is safe for concurrent use.
type Scheduler struct {
	cfg   Config
	model MemoryModel
}

// Result is the outcome of applying one rating.
type Result struct {
	State        CardState
	Due          time.Time
	Interval     time.Duration
	IntervalDays float64
}

// NewScheduler builds a Scheduler. Zero-valued config fields take defaults;
// out-of-range values return an error.
func NewScheduler(cfg Config) (*Scheduler, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		cfg: cfg,
		model: MemoryModel{
			MinStability:         cfg.MinStability,
			LapseStabilityFactor: cfg.LapseStabilityFactor,
			DifficultyScaling:    cfg.DifficultyScaling,
			Modifiers:            cfg.Modifiers,
		},
	}, nil
}

// Config returns the effective configuration.
func (s *Scheduler) Config() Config {
	return s.cfg
}

// InitCard returns the state of a card that has never been rated.
func (s *Scheduler) InitCard() CardState {
	return CardState{
		Stability:  s.cfg.InitialStability,
		Difficulty: s.cfg.InitialDifficulty,
		Phase:      PhaseNew,
	}
}

// Normalize repairs a state loaded from storage so legacy rows stay usable:
// non-finite or non-positive stability resets to the initial value, difficulty
// is clamped, negative counters are zeroed and an unknown phase is inferred
// from whether the card was ever reviewed.
func (s *Scheduler) Normalize(state CardState) CardState {
	if math.IsNaN(state.Stability) || math.IsInf(state.Stability, 0) || state.Stability <= 0 {
		state.Stability = s.cfg.InitialStability
	}
	state.Stability = s.model.clampStability(state.Stability)
	if math.IsNaN(state.Difficulty) {
		state.Difficulty = s.cfg.InitialDifficulty
	}
	state.Difficulty = Clamp(state.Difficulty, MinDifficulty, MaxDifficulty)
	if state.LapseCount < 0 {
		state.LapseCount = 0
	}
	if state.ConsecutiveFails < 0 {
		state.ConsecutiveFails = 0
	}
	if !state.Phase.IsValid() {
		if state.Reviewed() {
			state.Phase = PhaseReview
		} else {
			state.Phase = PhaseNew
		}
	}
	return state
}

// Event builds the ReviewEvent for rating the card at now.
func (s *Scheduler) Event(state CardState, rating Rating, now time.Time) ReviewEvent {
	ev := ReviewEvent{
		Rating:           rating,
		Now:              now,
		ElapsedDays:      elapsedDays(state, now),
		LapseCount:       state.LapseCount,
		ConsecutiveFails: state.ConsecutiveFails,
	}
	if state.Reviewed() && state.Stability > 0 {
		ev.ScheduledIntervalDays = s.intervalDays(state.Stability)
	}
	return ev
}

// Apply rates the card and returns the new state with its next due time.
// The only failure is a rating outside Again..Easy.
func (s *Scheduler) Apply(state CardState, rating Rating, now time.Time) (Result, error) {
	if !rating.IsValid() {
		return Result{}, &InvalidRatingError{Rating: rating}
	}
	state = s.Normalize(state)
	ev := s.Event(state, rating, now)

	var (
		next     CardState
		interval time.Duration
		days     float64
	)
	switch state.Phase {
	case PhaseNew, PhaseLearning:
		next, interval = s.applyLearning(state, rating)
		days = durationToDays(interval)
	case PhaseTransition:
		next, interval = s.applyTransition(state, rating)
		days = durationToDays(interval)
	default:
		next, days = s.applyReview(state, ev)
		interval = daysToDuration(days)
	}

	next.LastReview = now
	return Result{
		State:        next,
		Due:          now.Add(interval),
		Interval:     interval,
		IntervalDays: days,
	}, nil
}

func (s *Scheduler) applyLearning(state CardState, rating Rating) (CardState, time.Duration) {
	interval := s.cfg.Learning.For(rating)
	next := state
	switch rating {
	case Again:
		next.ConsecutiveFails++
		next.Phase = PhaseLearning
	case Hard:
		next.ConsecutiveFails = 0
		next.Phase = PhaseLearning
	case Good:
		next.Stability = s.cfg.InitialStability
		next.Difficulty = s.cfg.InitialDifficulty
		next.ConsecutiveFails = 0
		next.Phase = PhaseTransition
	case Easy:
		next = s.model.Graduate(state, rating, durationToDays(interval))
	}
	return next, interval
}

func (s *Scheduler) applyTransition(state CardState, rating Rating) (CardState, time.Duration) {
	interval := s.cfg.Transition.For(rating)
	next := state
	switch rating {
	case Again:
		next.LapseCount++
		next.ConsecutiveFails++
		next.Phase = PhaseLearning
	case Hard:
		next.ConsecutiveFails = 0
	case Good, Easy:
		next = s.model.Graduate(state, rating, durationToDays(interval))
	}
	return next, interval
}

func (s *Scheduler) applyReview(state CardState, ev ReviewEvent) (CardState, float64) {
	if ev.Rating == Again {
		next := s.model.Lapse(state)
		next.Phase = PhaseReview
		return next, durationToDays(s.cfg.RelearnInterval)
	}
	next := s.model.Review(state, ev)
	next.Phase = PhaseReview
	return next, s.intervalDays(next.Stability)
}

func (s *Scheduler) intervalDays(stability float64) float64 {
	return ComputeNextIntervalDays(stability, s.cfg.TargetRetention, s.cfg.MaxIntervalDays, s.cfg.MinIntervalDays)
}

// Retrievability is the probability of recall at now. A card that was never
// reviewed reports 1.
func (s *Scheduler) Retrievability(state CardState, now time.Time) float64 {
	state = s.Normalize(state)
	if !state.Reviewed() {
		return 1.0
	}
	return Clamp(Retrievability(elapsedDays(state, now), state.Stability), 0, 1)
}

// IsDue reports whether retrievability has fallen to the target retention.
func (s *Scheduler) IsDue(state CardState, now time.Time) bool {
	if !state.Reviewed() {
		return true
	}
	return s.Retrievability(state, now) <= s.cfg.TargetRetention
}
