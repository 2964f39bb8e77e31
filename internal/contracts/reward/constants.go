package reward

// Weekly distribution defaults
const (
	DefaultParticipationRate = 0.75
	DefaultRewardMean        = 0.5
	DefaultRewardStdDev      = 0.2
	DefaultTokenValue        = 2.0
)

// TokenPrecision is the number of decimal places kept for token amounts
const TokenPrecision = 6
