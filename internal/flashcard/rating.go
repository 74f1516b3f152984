package flashcard

import (
	"fmt"
	"strings"
)

// Rating is the learner's assessment of how well a card was recalled.
type Rating int

const (
	Again Rating = iota + 1 // forgot
	Hard                    // recalled with difficulty
	Good                    // recalled
	Easy                    // recalled effortlessly
)

// AllRatings lists the ratings in ascending order.
var AllRatings = [...]Rating{Again, Hard, Good, Easy}

var ratingNames = [...]string{Again: "again", Hard: "hard", Good: "good", Easy: "easy"}

// IsValid reports whether r is one of Again, Hard, Good or Easy.
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// ParseRating accepts either the numeric form ("1".."4") or the name ("good").
func ParseRating(s string) (Rating, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range AllRatings {
		if s == ratingNames[r] || s == fmt.Sprint(int(r)) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
}
