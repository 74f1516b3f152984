package flashcard

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// PresetIntervals holds the fixed interval applied for each rating while a
// card is outside the REVIEW phase.
type PresetIntervals struct {
	Again time.Duration `json:"again"`
	Hard  time.Duration `json:"hard"`
	Good  time.Duration `json:"good"`
	Easy  time.Duration `json:"easy"`
}

// DefaultLearningPresets are used for NEW and LEARNING cards.
func DefaultLearningPresets() PresetIntervals {
	return PresetIntervals{
		Again: time.Minute,
		Hard:  5 * time.Minute,
		Good:  10 * time.Minute,
		Easy:  2 * day,
	}
}

// DefaultTransitionPresets are used for TRANSITION cards.
func DefaultTransitionPresets() PresetIntervals {
	return PresetIntervals{
		Again: 5 * time.Minute,
		Hard:  30 * time.Minute,
		Good:  day,
		Easy:  2 * day,
	}
}

// For returns the interval for r. Invalid ratings yield zero.
func (p PresetIntervals) For(r Rating) time.Duration {
	switch r {
	case Again:
		return p.Again
	case Hard:
		return p.Hard
	case Good:
		return p.Good
	case Easy:
		return p.Easy
	default:
		return 0
	}
}

func (p PresetIntervals) isZero() bool {
	return p == PresetIntervals{}
}

func (p PresetIntervals) valid() bool {
	return p.Again > 0 && p.Hard > 0 && p.Good > 0 && p.Easy > 0
}

func durationToDays(d time.Duration) float64 {
	return float64(d) / float64(day)
}

// daysToDuration saturates instead of wrapping past the time.Duration range.
func daysToDuration(days float64) time.Duration {
	ns := days * float64(day)
	switch {
	case math.IsNaN(ns) || ns <= 0:
		return 0
	case ns >= math.MaxInt64:
		return math.MaxInt64
	}
	return time.Duration(ns)
}
