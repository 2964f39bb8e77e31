package staking

// Vault defaults
const (
	DefaultBaseAPR            = 0.02
	DefaultLockBonus          = 0.5
	DefaultAutoStakeThreshold = 5.0
	DefaultAutoStakeFraction  = 0.5
	DefaultStakeProbability   = 0.25
)

// Lock duration bounds in whole years
const (
	MinLockYears = 1
	MaxLockYears = 4
)

// VaultAccount holds staked principal inside the reward token ledger
const VaultAccount = "staking_vault"

// VotingPowerLockBonus is the per-year multiplier on sqrt(amount)
const VotingPowerLockBonus = 0.5

// Frequency is how often a position compounds
type Frequency string

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Frequencies lists every supported compounding schedule
var Frequencies = []Frequency{Weekly, Monthly, Yearly}

// positionNameFormat seeds deterministic position IDs
const positionNameFormat = "position/%d"

// interestPrecision is the number of decimal places kept for accrued interest
const interestPrecision = 8
