package domain

// MarketScenario classifies the market a projection played out in
type MarketScenario string

const (
	MarketBull         MarketScenario = "bull"
	MarketNormal       MarketScenario = "normal"
	MarketBear         MarketScenario = "bear"
	MarketCryptoWinter MarketScenario = "crypto_winter"
)

// AllMarketScenarios lists market scenarios from most to least favourable
var AllMarketScenarios = []MarketScenario{MarketBull, MarketNormal, MarketBear, MarketCryptoWinter}

// GrowthPattern classifies the shape of a revenue series
type GrowthPattern string

const (
	GrowthLinear      GrowthPattern = "linear"
	GrowthExponential GrowthPattern = "exponential"
	GrowthPlateau     GrowthPattern = "plateau"
	GrowthDeclining   GrowthPattern = "declining"
)

// ConfidenceLevel summarizes how closely actual figures match projected ones
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// ProjectionScenario is an externally supplied business projection
type ProjectionScenario struct {
	Name                    string                     `json:"name" validate:"required"`
	Investment              float64                    `json:"investment" validate:"gt=0"`
	PopulationSize          int                        `json:"population_size" validate:"gt=0,lte=10000"`
	ParticipationRate       float64                    `json:"participation_rate" validate:"gte=0,lte=1"`
	ProjectedYearNRevenue   float64                    `json:"projected_year_n_revenue"`
	ProjectedROI            Ratio                      `json:"projected_roi"`
	ProjectedBreakEvenWeeks float64                    `json:"projected_break_even_weeks" validate:"gte=0"`
	MarketWeights           map[MarketScenario]float64 `json:"market_weights" validate:"weights_sum,dive,gte=0,lte=1"`
}

// BreakEvenWeeksFromMonths converts a break-even period quoted in months to weeks
func BreakEvenWeeksFromMonths(months float64) float64 {
	return months * WeeksPerYear / MonthsPerYear
}

// ValidationReport compares a simulated run with its projection
type ValidationReport struct {
	ScenarioName string `json:"scenario_name"`
	Seed         int64  `json:"seed"`
	Weeks        int    `json:"weeks"`
	Completed    bool   `json:"completed"`

	ProjectedRevenue   float64    `json:"projected_revenue"`
	ActualRevenue      float64    `json:"actual_revenue"`
	RevenueVariancePct Percentage `json:"revenue_variance_pct"`

	ProjectedROIPct Percentage `json:"projected_roi_pct"`
	ActualROIPct    Percentage `json:"actual_roi_pct"`
	ROIVariancePct  Percentage `json:"roi_variance_pct"`

	ProjectedBreakEvenWeeks float64    `json:"projected_break_even_weeks"`
	ActualBreakEvenWeeks    float64    `json:"actual_break_even_weeks"`
	BreakEvenReached        bool       `json:"break_even_reached"`
	BreakEvenVariancePct    Percentage `json:"break_even_variance_pct"`

	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	RiskFactors     []string        `json:"risk_factors"`
	Mitigations     []string        `json:"mitigations"`
	GrowthPattern   GrowthPattern   `json:"growth_pattern"`
	MarketScenario  MarketScenario  `json:"market_scenario"`
	TokenImpact     bool            `json:"token_impact"`

	FinalGini       float64 `json:"final_gini"`
	WeightedRevenue float64 `json:"weighted_revenue"`
	CompositeScore  float64 `json:"composite_score"`
}
