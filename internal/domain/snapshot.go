package domain

// WeeklySnapshot is the immutable record of one simulated week
type WeeklySnapshot struct {
	Week     int          `json:"week"`
	Year     int          `json:"year"`
	Quarter  int          `json:"quarter"`
	Scenario ScenarioKind `json:"scenario"`

	Gini                float64 `json:"gini"`
	WealthGap           float64 `json:"wealth_gap"`
	WealthGapDefined    bool    `json:"wealth_gap_defined"`
	PovertyRate         float64 `json:"poverty_rate"`
	BottomQuintileShare float64 `json:"bottom_quintile_share"`

	AverageWealth float64 `json:"average_wealth"`
	MedianWealth  float64 `json:"median_wealth"`
	TotalWealth   float64 `json:"total_wealth"`
	P10Wealth     float64 `json:"p10_wealth"`
	P90Wealth     float64 `json:"p90_wealth"`

	Trends    Trends        `json:"trends"`
	Cashflow  Cashflow      `json:"cashflow"`
	Contracts ContractStats `json:"contracts"`
}

// Trends are week-over-week relative changes
type Trends struct {
	AverageWealth float64 `json:"average_wealth"`
	Gini          float64 `json:"gini"`
	PovertyRate   float64 `json:"poverty_rate"`
}

// Cashflow aggregates the money that moved through the population this week
type Cashflow struct {
	Income        float64 `json:"income"`
	InternalSpend float64 `json:"internal_spend"`
	ExternalSpend float64 `json:"external_spend"`
	Savings       float64 `json:"savings"`
	FeesCollected float64 `json:"fees_collected"`
}

// ContractStats summarizes the contract ledgers at a week boundary.
// Fields suffixed with "Week" cover only that week; the rest are cumulative.
type ContractStats struct {
	TokensIssuedWeek   float64 `json:"tokens_issued_week"`
	TokenSupply        float64 `json:"token_supply"`
	StablecoinMinted   float64 `json:"stablecoin_minted"`
	StablecoinBurned   float64 `json:"stablecoin_burned"`
	SavingsWeek        float64 `json:"savings_week"`
	SavingsDistributed float64 `json:"savings_distributed"`
	GroupVolumeWeek    float64 `json:"group_volume_week"`
	OrdersExecuted     int     `json:"orders_executed"`
	OrdersRefunded     int     `json:"orders_refunded"`
	TotalStaked        float64 `json:"total_staked"`
	ActivePositions    int     `json:"active_positions"`
	InterestPaid       float64 `json:"interest_paid"`
	ProposalsPassed    int     `json:"proposals_passed"`
	ProposalsFailed    int     `json:"proposals_failed"`
	ProposalsExpired   int     `json:"proposals_expired"`
	GovernanceTurnout  float64 `json:"governance_turnout"`
	VotesRejected      int     `json:"votes_rejected"`
}

// YearOf returns the 1-based year of a 1-based week index
func YearOf(week int) int {
	return (week-1)/WeeksPerYear + 1
}

// QuarterOf returns the 1-based quarter within the year of a 1-based week index
func QuarterOf(week int) int {
	return ((week-1)%WeeksPerYear)/WeeksPerQuarter + 1
}
