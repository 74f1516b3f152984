package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/flashcard"
	"github.com/vytor/vocabflash/internal/models"
)

// MockReviewService is a mock implementation of services.ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Card(ctx context.Context, userID, vocabID int64) (*models.CardView, error) {
	args := m.Called(ctx, userID, vocabID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CardView), args.Error(1)
}

func (m *MockReviewService) Review(ctx context.Context, userID, vocabID, deckID int64, rating flashcard.Rating) (*models.ReviewOutcome, error) {
	args := m.Called(ctx, userID, vocabID, deckID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewOutcome), args.Error(1)
}

func (m *MockReviewService) History(ctx context.Context, userID, vocabID int64, limit int) ([]models.ReviewLog, error) {
	args := m.Called(ctx, userID, vocabID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewLog), args.Error(1)
}

func (m *MockReviewService) Reset(ctx context.Context, userID, vocabID int64) error {
	args := m.Called(ctx, userID, vocabID)
	return args.Error(0)
}

func (m *MockReviewService) DueCards(ctx context.Context, userID, deckID int64, limit int) ([]models.CardView, error) {
	args := m.Called(ctx, userID, deckID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardView), args.Error(1)
}
