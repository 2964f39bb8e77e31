// Package stats holds the pure inequality and poverty measures computed
// over a population's wealth after every simulated week.
//
// All functions treat negative wealth as zero and never fail: degenerate
// inputs (empty, single-valued or all-zero vectors) map to defined sentinels.
package stats

import (
	"math"
	"sort"

	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

// sortedNonNegative copies wealth, clips negatives to zero and sorts ascending
func sortedNonNegative(wealth []float64) []float64 {
	out := make([]float64, len(wealth))
	for i, w := range wealth {
		out[i] = math.Max(0, w)
	}
	sort.Float64s(out)
	return out
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Gini computes G = Σ((2i - n - 1) × w_i) / (n × Σw) over wealth sorted
// ascending with 1-based i. Empty, single-valued and all-zero vectors give 0.
func Gini(wealth []float64) float64 {
	n := len(wealth)
	if n < 2 {
		return 0
	}
	sorted := sortedNonNegative(wealth)
	denominator := float64(n) * sum(sorted)
	if denominator == 0 {
		return 0
	}
	numerator := 0.0
	for i, w := range sorted {
		numerator += float64(2*(i+1)-n-1) * w
	}
	return numerator / denominator
}

// quintileBounds returns the slice indexes that delimit the bottom and top quintiles
func quintileBounds(n int) (bottomEnd, topStart int) {
	return int(float64(n) * BottomQuintileFraction), int(float64(n) * TopQuintileFraction)
}

// WealthGap returns mean(top 20%) / mean(bottom 20%).
// The second return value is false when the ratio is undefined: fewer than
// MinQuintilePopulation participants, or a bottom quintile holding ~0 wealth.
// In that case the first value is UndefinedWealthGap.
func WealthGap(wealth []float64) (float64, bool) {
	n := len(wealth)
	if n < MinQuintilePopulation {
		return UndefinedWealthGap, false
	}
	sorted := sortedNonNegative(wealth)
	bottomEnd, topStart := quintileBounds(n)
	bottomMean := utils.Mean(sorted[:bottomEnd])
	if bottomMean <= utils.Epsilon {
		return UndefinedWealthGap, false
	}
	return utils.Mean(sorted[topStart:]) / bottomMean, true
}

// PovertyLine returns the wealth threshold for a weekly food budget
func PovertyLine(weeklyFoodBudget float64) float64 {
	return PovertyLineMultiplier * weeklyFoodBudget
}

// PovertyRate is the fraction of participants below 4 × weeklyFoodBudget
func PovertyRate(wealth []float64, weeklyFoodBudget float64) float64 {
	if len(wealth) == 0 {
		return 0
	}
	line := PovertyLine(weeklyFoodBudget)
	below := 0
	for _, w := range wealth {
		if w < line {
			below++
		}
	}
	return float64(below) / float64(len(wealth))
}

// BottomQuintileShare is sum(bottom 20% wealth) / total wealth.
// Populations under MinQuintilePopulation or with ~0 total wealth give 0.
func BottomQuintileShare(wealth []float64) float64 {
	n := len(wealth)
	if n < MinQuintilePopulation {
		return 0
	}
	sorted := sortedNonNegative(wealth)
	total := sum(sorted)
	if total <= utils.Epsilon {
		return 0
	}
	bottomEnd, _ := quintileBounds(n)
	return sum(sorted[:bottomEnd]) / total
}

// Percentile returns the p-th percentile (0-100) using linear interpolation
// between closest ranks. Unlike the inequality measures it keeps negatives.
func Percentile(wealth []float64, p float64) float64 {
	n := len(wealth)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, wealth)
	sort.Float64s(sorted)

	rank := utils.Clamp(p, 0, 100) / 100 * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}
