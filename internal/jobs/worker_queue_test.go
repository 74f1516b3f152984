package jobs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/jobs"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/testutil/mocks"
	"github.com/vytor/vocabflash/internal/worker"
)

func TestWorkerQueue_EnqueueReviewLog(t *testing.T) {
	ledger := new(mocks.MockReviewLedger)
	entry := models.ReviewLog{ID: "abc", UserID: 3, VocabID: 9}
	ledger.On("LogReview", mock.Anything, entry).Return(nil).Once()

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	q := jobs.NewWorkerQueue(pool, ledger)

	require.NoError(t, q.EnqueueReviewLog(entry))
	pool.Stop()

	ledger.AssertExpectations(t)
	assert.ErrorIs(t, q.EnqueueReviewLog(entry), worker.ErrPoolClosed)
}
