package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/flashcard"
)

func TestPredict_MatchesApply(t *testing.T) {
	s := newScheduler(t, flashcard.Config{Modifiers: mustModifiers(t, "lateness", "lapse_decay")})

	states := map[string]flashcard.CardState{
		"new":        s.InitCard(),
		"learning":   {Stability: 0.2, Difficulty: 5, LastReview: t0.Add(-time.Minute), ConsecutiveFails: 2, Phase: flashcard.PhaseLearning},
		"transition": {Stability: 0.2, Difficulty: 5, LastReview: t0.Add(-10 * time.Minute), Phase: flashcard.PhaseTransition},
		"review":     {Stability: 8, Difficulty: 6.5, LastReview: t0.Add(-36 * time.Hour), LapseCount: 3, Phase: flashcard.PhaseReview},
		"legacy":     {Stability: 0, Difficulty: 0, LastReview: t0.Add(-72 * time.Hour)},
	}

	for name, state := range states {
		t.Run(name, func(t *testing.T) {
			pred := s.Predict(state, t0)
			require.Len(t, pred, 4)
			for _, r := range flashcard.AllRatings {
				res, err := s.Apply(state, r, t0)
				require.NoError(t, err)
				assert.Equal(t, res.Due, pred[r].Due, "rating %s", r)
				assert.Equal(t, res.IntervalDays, pred[r].Days, "rating %s", r)
				assert.Equal(t, r, pred[r].Rating)
				assert.NotEmpty(t, pred[r].Label)
			}
		})
	}
}

func TestPredict_Idempotent(t *testing.T) {
	s := newScheduler(t, flashcard.Config{})
	state := reviewState(5, 5)

	assert.Equal(t, s.Predict(state, t0), s.Predict(state, t0))
}

func TestPredict_NewCardLabels(t *testing.T) {
	s := newScheduler(t, flashcard.Config{})
	pred := s.Predict(s.InitCard(), t0)

	assert.Contains(t, pred[flashcard.Good].Label, "minutes")
	assert.Contains(t, pred[flashcard.Easy].Label, "2 days")
	assert.Contains(t, pred[flashcard.Easy].Label, "from now")
}

func TestPredictFast(t *testing.T) {
	s := newScheduler(t, flashcard.Config{})

	t.Run("review derives from good", func(t *testing.T) {
		state := reviewState(200, 5)
		exact := s.Predict(state, t0)
		fast := s.PredictFast(state, t0)

		good := exact[flashcard.Good].Days
		assert.InDelta(t, good, fast[flashcard.Good].Days, 1e-9)
		assert.InDelta(t, good*0.5, fast[flashcard.Hard].Days, 1e-9)
		assert.InDelta(t, good*2, fast[flashcard.Easy].Days, 1e-9)
		assert.Equal(t, exact[flashcard.Again], fast[flashcard.Again])
	})

	t.Run("floored at one day", func(t *testing.T) {
		fast := s.PredictFast(reviewState(1, 5), t0)
		for _, r := range []flashcard.Rating{flashcard.Hard, flashcard.Good, flashcard.Easy} {
			assert.GreaterOrEqual(t, fast[r].Days, 1.0)
		}
	})

	t.Run("non-review falls back to predict", func(t *testing.T) {
		card := s.InitCard()
		assert.Equal(t, s.Predict(card, t0), s.PredictFast(card, t0))
	})
}

func TestHumanizeInterval(t *testing.T) {
	assert.Equal(t, "10 minutes from now", flashcard.HumanizeInterval(t0, t0.Add(10*time.Minute)))
	assert.Equal(t, "3 hours ago", flashcard.HumanizeInterval(t0, t0.Add(-3*time.Hour)))
}
