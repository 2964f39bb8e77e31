package stats

import "github.com/osse101/CoopTokenSim_Go/internal/utils"

// Summary bundles every measure taken over one wealth vector
type Summary struct {
	Gini                float64
	WealthGap           float64
	WealthGapDefined    bool
	PovertyRate         float64
	BottomQuintileShare float64
	Average             float64
	Median              float64
	Total               float64
	P10                 float64
	P90                 float64
}

// Summarize computes all measures for wealth with the poverty line derived
// from weeklyFoodBudget
func Summarize(wealth []float64, weeklyFoodBudget float64) Summary {
	gap, defined := WealthGap(wealth)
	return Summary{
		Gini:                Gini(wealth),
		WealthGap:           gap,
		WealthGapDefined:    defined,
		PovertyRate:         PovertyRate(wealth, weeklyFoodBudget),
		BottomQuintileShare: BottomQuintileShare(wealth),
		Average:             utils.Mean(wealth),
		Median:              Percentile(wealth, PercentileMedian),
		Total:               sum(wealth),
		P10:                 Percentile(wealth, PercentileLow),
		P90:                 Percentile(wealth, PercentileHigh),
	}
}
