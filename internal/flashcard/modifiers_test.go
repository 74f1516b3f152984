package flashcard_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/flashcard"
)

func TestModifiers(t *testing.T) {
	noon := flashcard.ReviewEvent{Rating: flashcard.Good, Now: t0}

	t.Run("fail decay", func(t *testing.T) {
		ev := noon
		ev.ConsecutiveFails = 2
		assert.InDelta(t, 10*math.Pow(0.85, 2), flashcard.FailDecayModifier().Apply(10, ev), 1e-9)
	})

	t.Run("lapse decay", func(t *testing.T) {
		ev := noon
		ev.LapseCount = 5
		assert.InDelta(t, 10/1.5, flashcard.LapseDecayModifier().Apply(10, ev), 1e-9)
	})

	t.Run("time of day", func(t *testing.T) {
		late := noon
		late.Now = time.Date(2026, 3, 14, 2, 30, 0, 0, time.UTC)
		assert.InDelta(t, 9.5, flashcard.TimeOfDayModifier().Apply(10, late), 1e-9)
		assert.Equal(t, 10.0, flashcard.TimeOfDayModifier().Apply(10, noon))
	})

	t.Run("lateness", func(t *testing.T) {
		mod := flashcard.LatenessModifier()
		ev := noon
		assert.Equal(t, 10.0, mod.Apply(10, ev), "no schedule yet")

		ev.ScheduledIntervalDays = 2
		ev.ElapsedDays = 1
		assert.InDelta(t, 9.0, mod.Apply(10, ev), 1e-9, "early review")

		ev.ElapsedDays = 4
		assert.InDelta(t, 12.0, mod.Apply(10, ev), 1e-9, "twice overdue caps the bonus")

		ev.ElapsedDays = 40
		assert.InDelta(t, 12.0, mod.Apply(10, ev), 1e-9)
	})
}

func TestApplyBehaviorModifiers_ComposesInOrder(t *testing.T) {
	var order []string
	record := func(name string, f float64) flashcard.Modifier {
		return flashcard.Modifier{Name: name, Apply: func(s float64, _ flashcard.ReviewEvent) float64 {
			order = append(order, name)
			return s * f
		}}
	}
	m := flashcard.MemoryModel{
		MinStability: 0.1,
		Modifiers:    []flashcard.Modifier{record("a", 2), record("b", 0.5), record("c", 3)},
	}

	got := m.ApplyBehaviorModifiers(4, flashcard.ReviewEvent{})
	assert.InDelta(t, 12.0, got, 1e-9)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestModifiersByName(t *testing.T) {
	mods, err := flashcard.ModifiersByName("lapse_decay", " lateness ", "")
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "lapse_decay", mods[0].Name)
	assert.Equal(t, "lateness", mods[1].Name)

	_, err = flashcard.ModifiersByName("response_time")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response_time")

	assert.Equal(t, []string{"fail_decay", "lapse_decay", "lateness", "time_of_day"}, flashcard.ModifierNames())
}

func TestModifiersOnlyAffectSuccessfulReviews(t *testing.T) {
	halve := flashcard.Modifier{Name: "halve", Apply: func(s float64, _ flashcard.ReviewEvent) float64 { return s / 2 }}
	plain := newScheduler(t, flashcard.Config{})
	withMod := newScheduler(t, flashcard.Config{Modifiers: []flashcard.Modifier{halve}})
	state := reviewState(10, 5)

	a, err := plain.Apply(state, flashcard.Good, t0)
	require.NoError(t, err)
	b, err := withMod.Apply(state, flashcard.Good, t0)
	require.NoError(t, err)
	assert.InDelta(t, a.State.Stability/2, b.State.Stability, 1e-9)

	a, err = plain.Apply(state, flashcard.Again, t0)
	require.NoError(t, err)
	b, err = withMod.Apply(state, flashcard.Again, t0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
