package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

var cardStateColumns = []string{
	"user_id", "vocab_id", "deck_id", "stability", "difficulty", "last_review",
	"lapse_count", "consecutive_fails", "phase", "due_at", "created_at", "updated_at",
}

type cardStateRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCardStateRepository creates a new CardStateRepository implementation
func NewCardStateRepository(db *sql.DB) repository.CardStateRepository {
	return &cardStateRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *cardStateRepository) Get(ctx context.Context, userID, vocabID int64) (*models.CardRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card state: user_id=%d, vocab_id=%d", userID, vocabID)

	query, args, err := sqlBuilder.Select(cardStateColumns...).
		From("card_states").
		Where(squirrel.Eq{"user_id": userID, "vocab_id": vocabID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rec, err := scanCardRecord(log, r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card state not found: user_id=%d, vocab_id=%d", userID, vocabID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card state: %v", err)
		return nil, fmt.Errorf("get card state %d/%d: %w", userID, vocabID, err)
	}
	return &rec, nil
}

func (r *cardStateRepository) Upsert(ctx context.Context, rec models.CardRecord) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("upserting card state: user_id=%d, vocab_id=%d, phase=%s, stability=%.3f", rec.UserID, rec.VocabID, rec.State.Phase, rec.State.Stability)

	now := r.now()
	s := rec.State
	query, args, err := sqlBuilder.Insert("card_states").
		Columns(cardStateColumns...).
		Values(
			rec.UserID, rec.VocabID, rec.DeckID, s.Stability, s.Difficulty, nullTime(s.LastReview),
			s.LapseCount, s.ConsecutiveFails, s.Phase.String(), rec.DueAt.UTC(), now, now,
		).
		Suffix(`ON CONFLICT(user_id, vocab_id) DO UPDATE SET
    deck_id = excluded.deck_id,
    stability = excluded.stability,
    difficulty = excluded.difficulty,
    last_review = excluded.last_review,
    lapse_count = excluded.lapse_count,
    consecutive_fails = excluded.consecutive_fails,
    phase = excluded.phase,
    due_at = excluded.due_at,
    updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to upsert card state: %v", err)
		return fmt.Errorf("upsert card state %s: %w", rec.Key(), err)
	}
	return nil
}

func (r *cardStateRepository) Delete(ctx context.Context, userID, vocabID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card state: user_id=%d, vocab_id=%d", userID, vocabID)

	query, args, err := sqlBuilder.Delete("card_states").
		Where(squirrel.Eq{"user_id": userID, "vocab_id": vocabID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete card state: %v", err)
		return false, fmt.Errorf("delete card state %d/%d: %w", userID, vocabID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *cardStateRepository) Due(ctx context.Context, filter models.DueFilter) ([]models.CardRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing due cards: user_id=%d, deck_id=%d, before=%s, limit=%d", filter.UserID, filter.DeckID, filter.Before.Format(time.RFC3339), filter.Limit)

	query := sqlBuilder.Select(cardStateColumns...).
		From("card_states").
		Where(squirrel.Eq{"user_id": filter.UserID}).
		Where(squirrel.LtOrEq{"due_at": filter.Before.UTC()})
	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	query = query.OrderBy("due_at ASC", "vocab_id ASC").Limit(clampLimit(filter.Limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list due cards: %v", err)
		return nil, fmt.Errorf("list due cards: %w", err)
	}
	defer rows.Close()

	var cards []models.CardRecord
	for rows.Next() {
		rec, err := scanCardRecord(log, rows)
		if err != nil {
			log.Error("failed to scan card state row: %v", err)
			return nil, err
		}
		cards = append(cards, rec)
	}
	log.Debug("found %d due cards", len(cards))
	return cards, rows.Err()
}

func scanCardRecord(log *logger.Logger, row rowScanner) (models.CardRecord, error) {
	var (
		rec        models.CardRecord
		lastReview sql.NullTime
		phase      string
	)
	err := row.Scan(
		&rec.UserID, &rec.VocabID, &rec.DeckID, &rec.State.Stability, &rec.State.Difficulty, &lastReview,
		&rec.State.LapseCount, &rec.State.ConsecutiveFails, &phase, &rec.DueAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return models.CardRecord{}, err
	}
	if lastReview.Valid {
		rec.State.LastReview = lastReview.Time.UTC()
	}
	rec.State.Phase = parsePhase(log, phase)
	rec.DueAt = rec.DueAt.UTC()
	if err := rec.State.Validate(); err != nil {
		log.Warn("stored card state %s needs normalization: %v", rec.Key(), err)
	}
	return rec, nil
}
