package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/flashcard"
	"github.com/vytor/vocabflash/internal/models"
	"github.com/vytor/vocabflash/internal/testutil/mocks"
	"github.com/vytor/vocabflash/internal/worker"
)

type countJob struct {
	n   *atomic.Int64
	err error
}

func (j countJob) Name() string { return "count" }

func (j countJob) Run(context.Context) error {
	j.n.Add(1)
	return j.err
}

type blockJob struct {
	release chan struct{}
}

func (blockJob) Name() string { return "block" }

func (j blockJob) Run(context.Context) error {
	<-j.release
	return nil
}

func TestPool_StopDrainsQueue(t *testing.T) {
	var n atomic.Int64
	p := worker.NewPool(2, 50)
	p.Start(context.Background())

	for i := 0; i < 40; i++ {
		require.NoError(t, p.Submit(countJob{n: &n}))
	}
	require.NoError(t, p.Submit(countJob{n: &n, err: errors.New("boom")}))
	p.Stop()

	assert.Equal(t, int64(41), n.Load())
	completed, failed := p.Stats()
	assert.Equal(t, int64(40), completed)
	assert.Equal(t, int64(1), failed)
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := worker.NewPool(1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	var n atomic.Int64
	assert.ErrorIs(t, p.Submit(countJob{n: &n}), worker.ErrPoolClosed)
}

func TestPool_QueueFull(t *testing.T) {
	release := make(chan struct{})
	p := worker.NewPool(1, 1)
	p.Start(context.Background())

	var n atomic.Int64
	require.NoError(t, p.Submit(blockJob{release: release}))
	require.Eventually(t, func() bool { return p.QueueSize() == 0 }, time.Second, time.Millisecond, "worker picks up the blocking job")
	require.NoError(t, p.Submit(countJob{n: &n}))
	assert.ErrorIs(t, p.Submit(countJob{n: &n}), worker.ErrQueueFull)

	close(release)
	p.Stop()
	assert.Equal(t, int64(1), n.Load())
}

func TestPool_ConcurrentSubmitAndStop(t *testing.T) {
	var n atomic.Int64
	p := worker.NewPool(4, 1000)
	p.Start(context.Background())

	var wg sync.WaitGroup
	var accepted atomic.Int64
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if p.Submit(countJob{n: &n}) == nil {
					accepted.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	p.Stop()

	assert.Equal(t, accepted.Load(), n.Load())
}

func TestLogReviewJob(t *testing.T) {
	ledger := new(mocks.MockReviewLedger)
	entry := models.ReviewLog{ID: "e1", UserID: 1, VocabID: 2, Rating: flashcard.Good}
	ledger.On("LogReview", mock.Anything, entry).Return(nil).Once()

	job := &worker.LogReviewJob{Ledger: ledger, Entry: entry}
	assert.Equal(t, "log_review", job.Name())
	assert.NoError(t, job.Run(context.Background()))
	ledger.AssertExpectations(t)

	failing := new(mocks.MockReviewLedger)
	failing.On("LogReview", mock.Anything, entry).Return(errors.New("locked"))
	assert.Error(t, (&worker.LogReviewJob{Ledger: failing, Entry: entry}).Run(context.Background()))
}
