package jobs

import (
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/repository"
	"github.com/vytor/vocabflash/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	ledgerPool *worker.Pool
	ledger     repository.ReviewLedger
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(ledgerPool *worker.Pool, ledger repository.ReviewLedger) JobQueue {
	return &WorkerQueue{
		ledgerPool: ledgerPool,
		ledger:     ledger,
	}
}

func (q *WorkerQueue) EnqueueReviewLog(entry models.ReviewLog) error {
	return q.ledgerPool.Submit(&worker.LogReviewJob{
		Ledger: q.ledger,
		Entry:  entry,
	})
}
