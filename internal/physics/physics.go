// Package physics provides the one-dimensional geometry used by the engine:
// clamping, interpolation and band/reach tests in field-percent coordinates.
package physics

import "math"

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp moves from toward to by fraction t of the distance between them.
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// HorizontalDistance returns |a - b|.
func HorizontalDistance(a, b float64) float64 {
	return math.Abs(a - b)
}

// WithinReach reports whether two horizontal positions are strictly closer than reach.
func WithinReach(a, b, reach float64) bool {
	return HorizontalDistance(a, b) < reach
}

// InOpenRange reports whether lo < v < hi.
func InOpenRange(v, lo, hi float64) bool {
	return v > lo && v < hi
}
