package population

import "math"

// Initial wealth distribution (log-normal)
var DefaultWealthLocation = math.Log(1000)

const DefaultWealthScale = 0.6

// Weekly food budget ~ N(75, 15), floored
const (
	BudgetMean  = 75.0
	BudgetStd   = 15.0
	BudgetFloor = 20.0
)

// Internal spend propensity ~ N(0.6, 0.2), clipped to [0, 1]
const (
	InternalRatioMean = 0.6
	InternalRatioStd  = 0.2
)

// Weekly income ~ N(150, 40), floored at zero
const (
	IncomeMean  = 150.0
	IncomeStd   = 40.0
	IncomeFloor = 0.0
)
