package repository

import (
	"context"

	"github.com/vytor/vocabflash/internal/models"
)

// CardStateRepository persists one CardState per (user, vocab) pair.
type CardStateRepository interface {
	// Get returns nil, nil when the card has never been reviewed.
	Get(ctx context.Context, userID, vocabID int64) (*models.CardRecord, error)
	// Upsert replaces the stored state in a single statement.
	Upsert(ctx context.Context, rec models.CardRecord) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, userID, vocabID int64) (bool, error)
	Due(ctx context.Context, filter models.DueFilter) ([]models.CardRecord, error)
}

// ReviewLedger is the append-only record of every rating applied.
type ReviewLedger interface {
	LogReview(ctx context.Context, entry models.ReviewLog) error
	// History lists entries newest first.
	History(ctx context.Context, userID, vocabID int64, limit int) ([]models.ReviewLog, error)
}
