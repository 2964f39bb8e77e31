package grouppurchase

// Order defaults
const (
	DefaultMinContributors         = 5
	DefaultSavingsRate             = 0.15
	DefaultContributionShare       = 0.25
	DefaultJoinProbability         = 0.3
	DefaultEvaluationIntervalWeeks = 4
)

// OrderState is the lifecycle state of a group purchase order
type OrderState string

const (
	OrderOpen     OrderState = "open"
	OrderExecuted OrderState = "executed"
	OrderRefunded OrderState = "refunded"
)

// orderNameFormat seeds deterministic order IDs
const orderNameFormat = "order/%d"
