package domain

// ScenarioKind names the economic regime a run is simulated under
type ScenarioKind string

const (
	ScenarioTraditional ScenarioKind = "traditional"
	ScenarioCooperative ScenarioKind = "cooperative"
)

// Valid reports whether the scenario kind is one of the known regimes
func (k ScenarioKind) Valid() bool {
	return k == ScenarioTraditional || k == ScenarioCooperative
}

// SpendCategory labels stablecoin burns
type SpendCategory string

const (
	CategoryGroupBuy        SpendCategory = "group_buy"
	CategoryLocalProduction SpendCategory = "local_production"
	CategoryExternal        SpendCategory = "external"
	CategoryGroupPurchase   SpendCategory = "group_purchase"
)

// Calendar constants
const (
	WeeksPerYear    = 52
	WeeksPerQuarter = 13
	MonthsPerYear   = 12
)

// Size caps for a single run. Validation tags repeat these values.
const (
	MaxPopulationSize = 10000
	MaxRunWeeks       = 20 * WeeksPerYear
)

// Participant ID format
const ParticipantIDFormat = "M_%d"
