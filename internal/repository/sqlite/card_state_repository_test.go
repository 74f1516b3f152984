package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/vocabflash/internal/flashcard"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
	"github.com/vytor/vocabflash/internal/repository/sqlite"
	"github.com/vytor/vocabflash/internal/testutil"
)

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type CardStateRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CardStateRepository
}

func (s *CardStateRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardStateRepository(s.db)
}

func (s *CardStateRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func record(userID, vocabID, deckID int64, due time.Time) models.CardRecord {
	return models.CardRecord{
		UserID:  userID,
		VocabID: vocabID,
		DeckID:  deckID,
		State: flashcard.CardState{
			Stability:  3.5,
			Difficulty: 4.2,
			LastReview: due.Add(-48 * time.Hour),
			LapseCount: 1,
			Phase:      flashcard.PhaseReview,
		},
		DueAt: due,
	}
}

func (s *CardStateRepositorySuite) TestGet_NotFound() {
	rec, err := s.repo.Get(context.Background(), 1, 99)
	s.Require().NoError(err)
	s.Assert().Nil(rec)
}

func (s *CardStateRepositorySuite) TestUpsertAndGet() {
	ctx := context.Background()
	want := record(7, 42, 3, t0)

	s.Require().NoError(s.repo.Upsert(ctx, want))

	got, err := s.repo.Get(ctx, 7, 42)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(int64(3), got.DeckID)
	s.Assert().Equal(want.State.Stability, got.State.Stability)
	s.Assert().Equal(want.State.Difficulty, got.State.Difficulty)
	s.Assert().Equal(flashcard.PhaseReview, got.State.Phase)
	s.Assert().Equal(1, got.State.LapseCount)
	s.Assert().True(want.State.LastReview.Equal(got.State.LastReview))
	s.Assert().True(t0.Equal(got.DueAt))
	s.Assert().False(got.CreatedAt.IsZero())
}

func (s *CardStateRepositorySuite) TestUpsert_Replaces() {
	ctx := context.Background()
	rec := record(7, 42, 3, t0)
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	rec.State.Stability = 9
	rec.State.Phase = flashcard.PhaseLearning
	rec.DueAt = t0.Add(time.Hour)
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	got, err := s.repo.Get(ctx, 7, 42)
	s.Require().NoError(err)
	s.Assert().Equal(9.0, got.State.Stability)
	s.Assert().Equal(flashcard.PhaseLearning, got.State.Phase)
	s.Assert().True(t0.Add(time.Hour).Equal(got.DueAt))

	var n int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM card_states`).Scan(&n))
	s.Assert().Equal(1, n)
}

func (s *CardStateRepositorySuite) TestUpsert_NeverReviewed() {
	ctx := context.Background()
	rec := models.CardRecord{
		UserID:  1,
		VocabID: 2,
		State:   flashcard.CardState{Stability: 0.2, Difficulty: 5, Phase: flashcard.PhaseNew},
		DueAt:   t0,
	}
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	got, err := s.repo.Get(ctx, 1, 2)
	s.Require().NoError(err)
	s.Assert().True(got.State.LastReview.IsZero())
	s.Assert().False(got.State.Reviewed())
}

func (s *CardStateRepositorySuite) TestGet_LegacyRow() {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO card_states (user_id, vocab_id, stability, difficulty, last_review, lapse_count, phase, due_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, 5, 6, 0.0, 14.0, t0, -2, "graduated", t0)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, 5, 6)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(flashcard.Phase(0), got.State.Phase)
	s.Assert().Error(got.State.Validate())
}

func (s *CardStateRepositorySuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, record(7, 42, 3, t0)))

	deleted, err := s.repo.Delete(ctx, 7, 42)
	s.Require().NoError(err)
	s.Assert().True(deleted)

	deleted, err = s.repo.Delete(ctx, 7, 42)
	s.Require().NoError(err)
	s.Assert().False(deleted)

	got, err := s.repo.Get(ctx, 7, 42)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *CardStateRepositorySuite) TestDue() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, record(1, 10, 1, t0.Add(-2*time.Hour))))
	s.Require().NoError(s.repo.Upsert(ctx, record(1, 11, 2, t0.Add(-time.Hour))))
	s.Require().NoError(s.repo.Upsert(ctx, record(1, 12, 1, t0.Add(time.Hour))))
	s.Require().NoError(s.repo.Upsert(ctx, record(2, 10, 1, t0.Add(-time.Hour))))

	due, err := s.repo.Due(ctx, models.DueFilter{UserID: 1, Before: t0})
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Assert().Equal(int64(10), due[0].VocabID, "oldest due first")
	s.Assert().Equal(int64(11), due[1].VocabID)

	due, err = s.repo.Due(ctx, models.DueFilter{UserID: 1, DeckID: 2, Before: t0})
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Assert().Equal(int64(11), due[0].VocabID)

	due, err = s.repo.Due(ctx, models.DueFilter{UserID: 1, Before: t0.Add(2 * time.Hour), Limit: 1})
	s.Require().NoError(err)
	s.Assert().Len(due, 1)
}

func TestCardStateRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardStateRepositorySuite))
}
