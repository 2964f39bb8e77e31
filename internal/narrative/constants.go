package narrative

// Phase analysis needs at least three weeks per phase
const MinPhaseWeeks = 9

// Thresholds used when characterising phases and the conclusion
const (
	AdaptationThreshold   = 0.05
	RapidGrowthThreshold  = 0.10
	MaturityThreshold     = 0.03
	SuccessWealthGrowth   = 0.10
	EquityShiftThreshold  = 0.02
	GiniSimilarityBand    = 0.01
	DegenerateTotalWealth = 1e-6
)

const (
	Title            = "Economic System Evolution Analysis"
	NoHistory        = "No simulation history data available."
	NoKeyEvents      = "No significant key events detected."
	phaseInitial     = "initial phase"
	phaseDevelopment = "development phase"
	phaseMaturity    = "maturity phase"
)
