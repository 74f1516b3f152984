package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

var reviewLogColumns = []string{
	"id", "user_id", "vocab_id", "deck_id", "rating", "phase_before", "phase_after", "reviewed_at",
	"stability_before", "stability_after", "difficulty_before", "difficulty_after",
	"retrievability_before", "elapsed_days", "interval_days",
}

type reviewLedger struct {
	db *sql.DB
}

// NewReviewLedger creates a new ReviewLedger implementation
func NewReviewLedger(db *sql.DB) repository.ReviewLedger {
	return &reviewLedger{db: db}
}

// LogReview appends entry. An empty ID is filled with a random UUID.
func (r *reviewLedger) LogReview(ctx context.Context, e models.ReviewLog) error {
	log := logger.FromContext(ctx).WithPrefix("ledger_repo")
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	log.Debug("logging review: id=%s, user_id=%d, vocab_id=%d, rating=%s", e.ID, e.UserID, e.VocabID, e.Rating)

	query, args, err := sqlBuilder.Insert("review_log").
		Columns(reviewLogColumns...).
		Values(
			e.ID, e.UserID, e.VocabID, e.DeckID, int(e.Rating), e.PhaseBefore.String(), e.PhaseAfter.String(), e.ReviewedAt.UTC(),
			e.StabilityBefore, e.StabilityAfter, e.DifficultyBefore, e.DifficultyAfter,
			e.RetrievabilityBefore, e.ElapsedDays, e.IntervalDays,
		).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to log review: %v", err)
		return fmt.Errorf("log review %s: %w", e.ID, err)
	}
	return nil
}

func (r *reviewLedger) History(ctx context.Context, userID, vocabID int64, limit int) ([]models.ReviewLog, error) {
	log := logger.FromContext(ctx).WithPrefix("ledger_repo")
	log.Debug("loading review history: user_id=%d, vocab_id=%d, limit=%d", userID, vocabID, limit)

	query, args, err := sqlBuilder.Select(reviewLogColumns...).
		From("review_log").
		Where(squirrel.Eq{"user_id": userID, "vocab_id": vocabID}).
		OrderBy("reviewed_at DESC", "rowid DESC").
		Limit(clampLimit(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to load review history: %v", err)
		return nil, fmt.Errorf("review history %d/%d: %w", userID, vocabID, err)
	}
	defer rows.Close()

	var entries []models.ReviewLog
	for rows.Next() {
		var (
			e                       models.ReviewLog
			phaseBefore, phaseAfter string
		)
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.VocabID, &e.DeckID, &e.Rating, &phaseBefore, &phaseAfter, &e.ReviewedAt,
			&e.StabilityBefore, &e.StabilityAfter, &e.DifficultyBefore, &e.DifficultyAfter,
			&e.RetrievabilityBefore, &e.ElapsedDays, &e.IntervalDays,
		); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		e.PhaseBefore = parsePhase(log, phaseBefore)
		e.PhaseAfter = parsePhase(log, phaseAfter)
		e.ReviewedAt = e.ReviewedAt.UTC()
		entries = append(entries, e)
	}
	log.Debug("found %d review entries", len(entries))
	return entries, rows.Err()
}
