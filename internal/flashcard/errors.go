package flashcard

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is: errors.Is(err, flashcard.ErrInvalidRating).
var (
	ErrInvalidRating = errors.New("flashcard: invalid rating")
	ErrInvalidState  = errors.New("flashcard: invalid card state")
)

// InvalidRatingError is returned by Apply when the rating is outside 1..4.
type InvalidRatingError struct {
	Rating Rating
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("flashcard: invalid rating %d (want 1-4)", int(e.Rating))
}

func (e *InvalidRatingError) Is(target error) bool {
	return target == ErrInvalidRating
}

// InvalidStateError describes a malformed CardState field. It is reported by
// Validate and never returned from Apply, which normalizes instead.
type InvalidStateError struct {
	Field string
	Value any
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("flashcard: invalid card state: %s=%v", e.Field, e.Value)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
