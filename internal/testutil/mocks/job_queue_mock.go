package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/vocabflash/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueReviewLog(entry models.ReviewLog) error {
	args := m.Called(entry)
	return args.Error(0)
}
