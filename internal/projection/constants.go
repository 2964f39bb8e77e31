package projection

import "github.com/osse101/CoopTokenSim_Go/internal/domain"

// Run defaults
const (
	DefaultHorizonWeeks       = 260
	DefaultSeed               = 42
	DefaultTransactionFeeRate = 0.02
	DefaultGroupMarginRate    = 0.03
)

// Growth classification works on yearly windows so the four-weekly group
// purchase settlements do not show up as noise
const (
	GrowthWindowWeeks  = 52
	DecliningThreshold = -0.05
	PlateauThreshold   = 0.01
	AccelerationFactor = 1.25
)

// Market bands on the revenue variance, in percent
const (
	BullMinVariancePct   domain.Percentage = 20
	NormalMinVariancePct domain.Percentage = -20
	BearMinVariancePct   domain.Percentage = -50
)

// Confidence bands on the mean absolute variance, in percent
const (
	HighConfidenceMaxPct   domain.Percentage = 15
	MediumConfidenceMaxPct domain.Percentage = 40
)

// Risk thresholds
const (
	BreakEvenDelayTolerance = 0.2
	LowParticipationRate    = 0.5
	HighInequalityGini      = 0.4

	ShortfallVariancePct domain.Percentage = -20
)

// Composite score weights, summing to 1
const (
	ScoreWeightConfidence = 0.3
	ScoreWeightRevenue    = 0.3
	ScoreWeightROI        = 0.2
	ScoreWeightBreakEven  = 0.2

	// attainmentCap bounds how much outperformance can count towards the score
	attainmentCap = 1.5
)

// MarketMultipliers scale actual revenue under each market scenario
var MarketMultipliers = map[domain.MarketScenario]float64{
	domain.MarketBull:         1.3,
	domain.MarketNormal:       1.0,
	domain.MarketBear:         0.7,
	domain.MarketCryptoWinter: 0.4,
}

var confidenceScores = map[domain.ConfidenceLevel]float64{
	domain.ConfidenceHigh:   1.0,
	domain.ConfidenceMedium: 0.6,
	domain.ConfidenceLow:    0.2,
}

// Risk factors
const (
	RiskBreakEvenDelayed     = "Break-even delayed beyond projection"
	RiskBreakEvenNotReached  = "Break-even not reached within horizon"
	RiskRevenueShortfall     = "Revenue below projection"
	RiskROIShortfall         = "ROI below projection"
	RiskDecliningRevenue     = "Weekly revenue declining"
	RiskLowParticipation     = "Low reward participation"
	RiskPersistentInequality = "Wealth inequality remains high"
)

// Mitigations paired with risk factors
const (
	MitigationPhasedFunding   = "Phase the investment and secure bridge funding until cumulative revenue covers it"
	MitigationRevisitModel    = "Revisit the revenue model before committing the full investment"
	MitigationGrowVolume      = "Grow group purchase volume and member recruitment"
	MitigationReduceCosts     = "Reduce operating costs or raise the transaction fee"
	MitigationRetention       = "Investigate member retention and spending shifts"
	MitigationIncentives      = "Strengthen reward incentives and onboarding"
	MitigationTargetedSupport = "Target group purchase savings at the lowest quintile"
)

const (
	LogMsgValidationStarted   = "Projection validation started"
	LogMsgValidationCompleted = "Projection validation completed"
	LogMsgScenariosLoaded     = "Projection scenarios loaded"
	LogMsgComparisonCompleted = "Projection comparison completed"
	LogMsgCatalogReloaded     = "Projection catalog reloaded"
)

// CacheSchemaVersion is stored with every cached report.
// Increment this when ValidationReport changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// ScenarioFilePattern matches projection scenario files in a directory
const ScenarioFilePattern = "*.json"

// SchemaPath is the JSON schema projection scenario files must satisfy
const SchemaPath = "configs/schemas/projection_scenario.schema.json"
