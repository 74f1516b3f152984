package flashcard

import "math"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Retrievability is the forgetting curve exp(-elapsed/stability).
// A non-positive stability means nothing is retained.
func Retrievability(elapsedDays, stability float64) float64 {
	if stability <= 0 {
		return 0.0
	}
	return math.Exp(-elapsedDays / stability)
}
