package projection

import (
	"math"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

// WeeklyRevenue derives the cooperative's revenue proxy for each week:
// membership fees, a transaction fee on internal spend and a margin on
// executed group purchase volume, less the operating cost
func WeeklyRevenue(history []domain.WeeklySnapshot, opts Options) []float64 {
	revenue := make([]float64, len(history))
	for i, s := range history {
		revenue[i] = s.Cashflow.FeesCollected +
			s.Cashflow.InternalSpend*opts.TransactionFeeRate +
			s.Contracts.GroupVolumeWeek*opts.GroupMarginRate -
			opts.WeeklyOperatingCost
	}
	return revenue
}

// YearNRevenue is the revenue of the final year of the series, or of the
// whole series when it is shorter than a year
func YearNRevenue(revenue []float64) float64 {
	start := max(0, len(revenue)-domain.WeeksPerYear)
	total := 0.0
	for _, r := range revenue[start:] {
		total += r
	}
	return total
}

// ActualROI returns (cumulative revenue - investment) / investment
func ActualROI(revenue []float64, investment float64) domain.Ratio {
	total := 0.0
	for _, r := range revenue {
		total += r
	}
	return domain.Ratio((total - investment) / investment)
}

// BreakEvenWeek returns the first 1-based week at which cumulative revenue
// covers the investment
func BreakEvenWeek(revenue []float64, investment float64) (int, bool) {
	cumulative := 0.0
	for i, r := range revenue {
		cumulative += r
		if cumulative >= investment {
			return i + 1, true
		}
	}
	return 0, false
}

// ClassifyGrowth compares the first and last yearly windows of the series.
// Flat late growth is a plateau; late increments clearly larger than early
// ones are exponential.
func ClassifyGrowth(revenue []float64) domain.GrowthPattern {
	n := len(revenue)
	window := min(GrowthWindowWeeks, n/4)
	if window == 0 {
		return domain.GrowthPlateau
	}

	first := utils.Mean(revenue[:window])
	second := utils.Mean(revenue[window : 2*window])
	penultimate := utils.Mean(revenue[n-2*window : n-window])
	last := utils.Mean(revenue[n-window:])

	early := second - first
	late := last - penultimate
	switch {
	case utils.RelativeChange(first, last) < DecliningThreshold:
		return domain.GrowthDeclining
	case math.Abs(utils.RelativeChange(penultimate, last)) < PlateauThreshold:
		return domain.GrowthPlateau
	case late > early*AccelerationFactor && late > 0:
		return domain.GrowthExponential
	default:
		return domain.GrowthLinear
	}
}

// ClassifyMarket maps the revenue variance onto the market bands
func ClassifyMarket(revenueVariance domain.Percentage) domain.MarketScenario {
	switch {
	case revenueVariance >= BullMinVariancePct:
		return domain.MarketBull
	case revenueVariance >= NormalMinVariancePct:
		return domain.MarketNormal
	case revenueVariance >= BearMinVariancePct:
		return domain.MarketBear
	default:
		return domain.MarketCryptoWinter
	}
}

// ClassifyConfidence maps the mean absolute variance onto the confidence bands
func ClassifyConfidence(variances ...domain.Percentage) domain.ConfidenceLevel {
	if len(variances) == 0 {
		return domain.ConfidenceLow
	}
	total := 0.0
	for _, v := range variances {
		total += math.Abs(float64(v))
	}
	mean := domain.Percentage(total / float64(len(variances)))
	switch {
	case mean <= HighConfidenceMaxPct:
		return domain.ConfidenceHigh
	case mean <= MediumConfidenceMaxPct:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// WeightedRevenue scales revenue by the market multipliers under the given
// weights. Without weights the normal market is assumed.
func WeightedRevenue(revenue float64, weights map[domain.MarketScenario]float64) float64 {
	if len(weights) == 0 {
		return revenue * MarketMultipliers[domain.MarketNormal]
	}
	weighted := 0.0
	for _, m := range domain.AllMarketScenarios {
		weighted += revenue * weights[m] * MarketMultipliers[m]
	}
	return weighted
}
