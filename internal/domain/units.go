package domain

import "math"

// Ratio is a fraction where 1.0 means 100%
type Ratio float64

// Percentage is a ratio scaled by 100
type Percentage float64

// Percent converts a ratio to a percentage
func (r Ratio) Percent() Percentage {
	return Percentage(float64(r) * 100)
}

// Ratio converts a percentage back to a ratio
func (p Percentage) Ratio() Ratio {
	return Ratio(float64(p) / 100)
}

// Float64 returns the raw percentage value
func (p Percentage) Float64() float64 {
	return float64(p)
}

// VariancePct returns (actual - projected) / |projected| as a percentage.
// Both operands must already be percentages; use Ratio.Percent to convert.
// A zero projection yields the absolute difference in percentage points.
func VariancePct(projected, actual Percentage) Percentage {
	if projected == 0 {
		return actual - projected
	}
	return Percentage((float64(actual) - float64(projected)) / math.Abs(float64(projected)) * 100)
}

// RelativeVariance compares two quantities measured in the same unit
// (currency, weeks) and returns the change as a percentage
func RelativeVariance(projected, actual float64) Percentage {
	if projected == 0 {
		return Percentage(actual - projected)
	}
	return Percentage((actual - projected) / math.Abs(projected) * 100)
}
