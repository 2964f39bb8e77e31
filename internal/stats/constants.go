package stats

// Quintile boundaries used by wealth gap and bottom-quintile share
const (
	BottomQuintileFraction = 0.2
	TopQuintileFraction    = 0.8
)

// MinQuintilePopulation is the smallest population with a non-empty bottom quintile
const MinQuintilePopulation = 5

// PovertyLineMultiplier scales the weekly food budget into the poverty line
const PovertyLineMultiplier = 4.0

// UndefinedWealthGap is reported when the bottom quintile holds no wealth.
// It is finite so downstream aggregation and JSON encoding never see Inf.
const UndefinedWealthGap = 1e6

// Percentiles reported in every summary
const (
	PercentileLow    = 10.0
	PercentileMedian = 50.0
	PercentileHigh   = 90.0
)
