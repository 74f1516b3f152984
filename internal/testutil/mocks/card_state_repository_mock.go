package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockCardStateRepository is a mock implementation of repository.CardStateRepository
type MockCardStateRepository struct {
	mock.Mock
}

func (m *MockCardStateRepository) Get(ctx context.Context, userID, vocabID int64) (*models.CardRecord, error) {
	args := m.Called(ctx, userID, vocabID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CardRecord), args.Error(1)
}

func (m *MockCardStateRepository) Upsert(ctx context.Context, rec models.CardRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockCardStateRepository) Delete(ctx context.Context, userID, vocabID int64) (bool, error) {
	args := m.Called(ctx, userID, vocabID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardStateRepository) Due(ctx context.Context, filter models.DueFilter) ([]models.CardRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardRecord), args.Error(1)
}
