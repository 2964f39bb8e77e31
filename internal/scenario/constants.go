package scenario

// Run defaults
const (
	DefaultParticipantCount           = 50
	DefaultWeeks                      = 156
	DefaultGroupBuyingSavingsRate     = 0.15
	DefaultLocalProductionSavingsRate = 0.25
	DefaultCoopFee                    = 1.0
	DefaultSeed                       = 42
	DefaultFoodBudget                 = 75.0
)

// Key event thresholds relative to the previous week
const (
	EqualityImprovementFactor = 0.95
	PovertyReductionFactor    = 0.90
)

// Key event types
const (
	EventEqualityImprovement = "equality_improvement"
	EventPovertyReduction    = "poverty_reduction"
)

// Preset names
const (
	PresetBaseline         = "baseline"
	PresetHighSavings      = "high_savings"
	PresetLowParticipation = "low_participation"
	PresetIncomeShock      = "income_shock"
)

const (
	LogMsgRunStarted   = "Simulation run started"
	LogMsgRunCompleted = "Simulation run completed"
	LogMsgRunAborted   = "Simulation run aborted"
	LogMsgWeekComplete = "Week simulated"
)
