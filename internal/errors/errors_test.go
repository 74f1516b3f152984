package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/errors"
)

func TestAppError_Format(t *testing.T) {
	err := errors.NewNotFoundError("card", "7/42")
	assert.Equal(t, "NOT_FOUND: card not found: 7/42", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Status)

	cause := stderrors.New("disk full")
	internal := errors.NewInternalError(cause)
	assert.Equal(t, "INTERNAL_ERROR: internal server error (disk full)", internal.Error())
	assert.ErrorIs(t, internal, cause)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("review: %w", errors.NewValidationError("rating", "must be 1..4"))

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)

	_, ok = errors.As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestWrapValidationError(t *testing.T) {
	cause := stderrors.New("bad value")
	err := errors.WrapValidationError("rating", cause)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Contains(t, err.Message, "bad value")
	assert.ErrorIs(t, err, cause)
}

func TestNewUnavailableError(t *testing.T) {
	cause := stderrors.New("sql: database is closed")
	err := errors.NewUnavailableError("database", cause)
	assert.Equal(t, errors.ErrCodeUnavailable, err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.Equal(t, "database unavailable", err.Message)
	assert.ErrorIs(t, err, cause)
}
