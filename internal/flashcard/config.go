package flashcard

import (
	"fmt"
	"time"
)

// Config tunes the scheduler. Zero-valued fields take the defaults of
// DefaultConfig, so Config{} is usable as-is.
type Config struct {
	TargetRetention      float64         // zero → 0.9
	MaxIntervalDays      float64         // zero → 3650
	MinIntervalDays      float64         // zero → 1 minute
	InitialStability     float64         // zero → 0.20
	InitialDifficulty    float64         // zero → 5.0
	MinStability         float64         // zero → 0.1
	LapseStabilityFactor float64         // zero → 0.5
	RelearnInterval      time.Duration   // zero → 10m
	DifficultyScaling    bool            // scale growth by (11-D)/10
	Learning             PresetIntervals // zero → DefaultLearningPresets
	Transition           PresetIntervals // zero → DefaultTransitionPresets
	Modifiers            []Modifier      // applied in order after the base stability update
}

// DefaultConfig returns the canonical parameter set.
func DefaultConfig() Config {
	return Config{
		TargetRetention:      0.9,
		MaxIntervalDays:      3650,
		MinIntervalDays:      1.0 / 1440,
		InitialStability:     0.20,
		InitialDifficulty:    5.0,
		MinStability:         0.1,
		LapseStabilityFactor: 0.5,
		RelearnInterval:      10 * time.Minute,
		Learning:             DefaultLearningPresets(),
		Transition:           DefaultTransitionPresets(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TargetRetention == 0 {
		c.TargetRetention = def.TargetRetention
	}
	if c.MaxIntervalDays == 0 {
		c.MaxIntervalDays = def.MaxIntervalDays
	}
	if c.MinIntervalDays == 0 {
		c.MinIntervalDays = def.MinIntervalDays
	}
	if c.InitialStability == 0 {
		c.InitialStability = def.InitialStability
	}
	if c.InitialDifficulty == 0 {
		c.InitialDifficulty = def.InitialDifficulty
	}
	if c.MinStability == 0 {
		c.MinStability = def.MinStability
	}
	if c.LapseStabilityFactor == 0 {
		c.LapseStabilityFactor = def.LapseStabilityFactor
	}
	if c.RelearnInterval == 0 {
		c.RelearnInterval = def.RelearnInterval
	}
	if c.Learning.isZero() {
		c.Learning = def.Learning
	}
	if c.Transition.isZero() {
		c.Transition = def.Transition
	}
	return c
}

func (c Config) validate() error {
	switch {
	case c.TargetRetention <= 0 || c.TargetRetention >= 1:
		return fmt.Errorf("flashcard: target retention %v out of range (0, 1)", c.TargetRetention)
	case c.MinIntervalDays <= 0 || c.MaxIntervalDays < c.MinIntervalDays:
		return fmt.Errorf("flashcard: interval bounds [%v, %v] invalid", c.MinIntervalDays, c.MaxIntervalDays)
	case c.MaxIntervalDays > MaxIntervalLimitDays:
		return fmt.Errorf("flashcard: max interval %v days exceeds %v", c.MaxIntervalDays, MaxIntervalLimitDays)
	case c.MinStability <= 0:
		return fmt.Errorf("flashcard: minimum stability %v must be positive", c.MinStability)
	case c.InitialStability < c.MinStability:
		return fmt.Errorf("flashcard: initial stability %v below minimum %v", c.InitialStability, c.MinStability)
	case c.InitialDifficulty < MinDifficulty || c.InitialDifficulty > MaxDifficulty:
		return fmt.Errorf("flashcard: initial difficulty %v out of range [1, 10]", c.InitialDifficulty)
	case c.LapseStabilityFactor <= 0 || c.LapseStabilityFactor > 1:
		return fmt.Errorf("flashcard: lapse stability factor %v out of range (0, 1]", c.LapseStabilityFactor)
	case c.RelearnInterval <= 0:
		return fmt.Errorf("flashcard: relearn interval %v must be positive", c.RelearnInterval)
	case !c.Learning.valid():
		return fmt.Errorf("flashcard: learning presets must all be positive: %+v", c.Learning)
	case !c.Transition.valid():
		return fmt.Errorf("flashcard: transition presets must all be positive: %+v", c.Transition)
	}
	for i, m := range c.Modifiers {
		if m.Apply == nil {
			return fmt.Errorf("flashcard: modifier %d (%q) has no function", i, m.Name)
		}
	}
	return nil
}
