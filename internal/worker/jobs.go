package worker

import (
	"context"

	"github.com/vytor/vocabflash/internal/logger"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
)

// LogReviewJob appends one entry to the review ledger.
type LogReviewJob struct {
	Ledger repository.ReviewLedger
	Entry  models.ReviewLog
}

func (j *LogReviewJob) Name() string { return "log_review" }

func (j *LogReviewJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id":  j.Entry.UserID,
		"vocab_id": j.Entry.VocabID,
	})
	if err := j.Ledger.LogReview(ctx, j.Entry); err != nil {
		log.Error("failed to append review %s: %v", j.Entry.ID, err)
		return err
	}
	return nil
}
