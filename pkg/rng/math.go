package rng

import "math"

// Clamp bounds x to [lo, hi]. NaN maps to the midpoint of the range and
// infinities map to the matching bound, so a bad input never propagates.
func Clamp(x, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	switch {
	case math.IsNaN(x):
		return lo + (hi-lo)/2
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}

// Finite returns x, or fallback when x is NaN or infinite.
func Finite(x, fallback float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	return x
}

// SafeDiv divides a by b, returning fallback for a zero, NaN or infinite result.
func SafeDiv(a, b, fallback float64) float64 {
	if b == 0 || math.IsNaN(b) {
		return fallback
	}
	return Finite(a/b, fallback)
}

// Lerp interpolates between a and b by t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	t = Clamp(t, 0, 1)
	return a + (b-a)*t
}

// Round rounds half away from zero and maps NaN to 0.
func Round(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	return int(math.Round(x))
}
