package flashcard

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Modifier is one multiplicative adjustment of stability after a successful
// review. Modifiers are pure and composed in order.
type Modifier struct {
	Name  string
	Apply func(stability float64, ev ReviewEvent) float64
}

// LatenessModifier rewards recalls that happen after the scheduled interval
// (up to ×1.2 at twice the interval) and damps early reviews (down to ×0.8).
// The interval it compares against is ReviewEvent.ScheduledIntervalDays,
// which the stability formula derives. Right after graduation or a lapse it
// is shorter than the preset or relearn interval the card actually waited,
// so an on-time review there already counts as late.
func LatenessModifier() Modifier {
	return Modifier{Name: "lateness", Apply: func(s float64, ev ReviewEvent) float64 {
		if ev.ScheduledIntervalDays <= 0 {
			return s
		}
		ratio := ev.ElapsedDays / ev.ScheduledIntervalDays
		if ratio >= 1 {
			return s * Lerp(1.0, 1.2, Clamp(ratio-1, 0, 1))
		}
		return s * Lerp(0.8, 1.0, ratio)
	}}
}

// FailDecayModifier scales by 0.85^n for a streak of n consecutive fails.
func FailDecayModifier() Modifier {
	return Modifier{Name: "fail_decay", Apply: func(s float64, ev ReviewEvent) float64 {
		return s * math.Pow(0.85, float64(ev.ConsecutiveFails))
	}}
}

// LapseDecayModifier scales by 1/(1+0.1·lapses).
func LapseDecayModifier() Modifier {
	return Modifier{Name: "lapse_decay", Apply: func(s float64, ev ReviewEvent) float64 {
		return s / (1 + 0.1*float64(ev.LapseCount))
	}}
}

// TimeOfDayModifier trims 5% off reviews done between midnight and 05:00.
func TimeOfDayModifier() Modifier {
	return Modifier{Name: "time_of_day", Apply: func(s float64, ev ReviewEvent) float64 {
		if ev.Now.Hour() < 5 {
			return s * 0.95
		}
		return s
	}}
}

var builtinModifiers = map[string]func() Modifier{
	"lateness":    LatenessModifier,
	"fail_decay":  FailDecayModifier,
	"lapse_decay": LapseDecayModifier,
	"time_of_day": TimeOfDayModifier,
}

// ModifierNames lists the built-in modifier names, sorted.
func ModifierNames() []string {
	names := make([]string, 0, len(builtinModifiers))
	for n := range builtinModifiers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ModifiersByName resolves names to built-in modifiers, keeping their order.
func ModifiersByName(names ...string) ([]Modifier, error) {
	mods := make([]Modifier, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		ctor, ok := builtinModifiers[n]
		if !ok {
			return nil, fmt.Errorf("flashcard: unknown modifier %q (known: %s)", n, strings.Join(ModifierNames(), ", "))
		}
		mods = append(mods, ctor())
	}
	return mods, nil
}
