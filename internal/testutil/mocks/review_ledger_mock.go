package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockReviewLedger is a mock implementation of repository.ReviewLedger
type MockReviewLedger struct {
	mock.Mock
}

func (m *MockReviewLedger) LogReview(ctx context.Context, entry models.ReviewLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockReviewLedger) History(ctx context.Context, userID, vocabID int64, limit int) ([]models.ReviewLog, error) {
	args := m.Called(ctx, userID, vocabID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewLog), args.Error(1)
}
