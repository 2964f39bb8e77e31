package utils

import "math"

// Clamp bounds value to [min, max]
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// FloorAt returns value, or floor when value is below it
func FloorAt(value, floor float64) float64 {
	if value < floor {
		return floor
	}
	return value
}

// Mean returns the arithmetic mean, 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// AlmostZero reports whether |value| is below the epsilon used for degenerate denominators
func AlmostZero(value float64) bool {
	return math.Abs(value) <= Epsilon
}

// RelativeChange returns (current - previous) / |previous|.
// When previous is ~0 the sign of the change is returned instead (+1, -1 or 0).
func RelativeChange(previous, current float64) float64 {
	if !AlmostZero(previous) {
		return (current - previous) / math.Abs(previous)
	}
	switch {
	case current > previous:
		return 1
	case current < previous:
		return -1
	default:
		return 0
	}
}

// Epsilon is the threshold below which a denominator is treated as zero
const Epsilon = 1e-6
