package jobs

import "github.com/vytor/vocabflash/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueReviewLog(entry models.ReviewLog) error
}
