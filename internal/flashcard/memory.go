package flashcard

import "math"

const (
	MinDifficulty = 1.0
	MaxDifficulty = 10.0

	// MaxIntervalLimitDays bounds both stability and MaxIntervalDays. It
	// stays well inside what time.Duration can represent.
	MaxIntervalLimitDays = 36500.0

	maxStability = MaxIntervalLimitDays
)

var (
	difficultyDelta = [...]float64{Again: 0.6, Hard: 0.2, Good: -0.3, Easy: -0.5}
	stabilityFactor = [...]float64{Again: 0.30, Hard: 1.20, Good: 2.00, Easy: 3.50}
)

// MemoryModel owns the stability/difficulty update rules used in the REVIEW
// phase and when a card graduates into it.
type MemoryModel struct {
	MinStability         float64
	LapseStabilityFactor float64
	DifficultyScaling    bool
	Modifiers            []Modifier
}

// UpdateDifficulty shifts difficulty by the rating's delta and clamps to [1, 10].
func (m MemoryModel) UpdateDifficulty(state CardState, rating Rating) float64 {
	if !rating.IsValid() {
		return Clamp(state.Difficulty, MinDifficulty, MaxDifficulty)
	}
	return Clamp(state.Difficulty+difficultyDelta[rating], MinDifficulty, MaxDifficulty)
}

// UpdateStabilityBase multiplies stability by the rating factor, optionally
// damped by the new difficulty so easier cards grow faster.
func (m MemoryModel) UpdateStabilityBase(state CardState, rating Rating, newDifficulty float64) float64 {
	if !rating.IsValid() {
		return m.clampStability(state.Stability)
	}
	s := state.Stability * stabilityFactor[rating]
	if m.DifficultyScaling {
		s *= (11 - newDifficulty) / 10
	}
	return m.clampStability(s)
}

// ApplyBehaviorModifiers runs the modifier chain left to right.
func (m MemoryModel) ApplyBehaviorModifiers(stability float64, ev ReviewEvent) float64 {
	for _, mod := range m.Modifiers {
		stability = mod.Apply(stability, ev)
	}
	return m.clampStability(stability)
}

// Review applies a successful (Hard, Good, Easy) review in the REVIEW phase.
func (m MemoryModel) Review(state CardState, ev ReviewEvent) CardState {
	next := state
	next.Difficulty = m.UpdateDifficulty(state, ev.Rating)
	s := m.UpdateStabilityBase(state, ev.Rating, next.Difficulty)
	next.Stability = m.ApplyBehaviorModifiers(s, ev)
	next.ConsecutiveFails = 0
	return next
}

// Lapse handles Again in the REVIEW phase: stability is cut by the lapse
// factor, difficulty takes the Again delta and both counters grow.
func (m MemoryModel) Lapse(state CardState) CardState {
	next := state
	next.Difficulty = m.UpdateDifficulty(state, Again)
	next.Stability = m.clampStability(state.Stability * m.LapseStabilityFactor)
	next.LapseCount++
	next.ConsecutiveFails++
	return next
}

// Graduate seeds the memory state of a card entering REVIEW. The seeded
// stability is the graduating interval, so the model starts from what the
// learner just demonstrated.
func (m MemoryModel) Graduate(state CardState, rating Rating, intervalDays float64) CardState {
	next := state
	next.Difficulty = m.UpdateDifficulty(state, rating)
	next.Stability = m.clampStability(intervalDays)
	next.ConsecutiveFails = 0
	next.Phase = PhaseReview
	return next
}

func (m MemoryModel) clampStability(s float64) float64 {
	if math.IsNaN(s) {
		return m.MinStability
	}
	return Clamp(s, m.MinStability, maxStability)
}

// ComputeNextIntervalDays inverts the forgetting curve: the interval after
// which retrievability decays to targetRetention, clamped to [minInterval, maxInterval].
func ComputeNextIntervalDays(stability, targetRetention, maxInterval, minInterval float64) float64 {
	targetRetention = Clamp(targetRetention, 0.01, 0.99)
	days := -stability * math.Log(targetRetention)
	return Clamp(days, minInterval, maxInterval)
}
