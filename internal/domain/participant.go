package domain

import "fmt"

// Participant is one member of a simulated population.
// A participant belongs to exactly one run and is mutated only by that run's
// scenario engine and contract coordinator.
type Participant struct {
	ID                 string  `json:"id"`
	InitialWealth      float64 `json:"initial_wealth"`
	Wealth             float64 `json:"wealth"`
	WeeklyIncome       float64 `json:"weekly_income"`
	WeeklyBudget       float64 `json:"weekly_budget"`
	InternalSpendRatio float64 `json:"internal_spend_ratio"`

	// Spend split applied in the most recent week
	InternalSpend float64 `json:"internal_spend"`
	ExternalSpend float64 `json:"external_spend"`

	Balances ContractBalances `json:"balances"`
}

// ContractBalances mirrors the participant's position in each contract ledger.
// The coordinator refreshes it at the end of every week.
type ContractBalances struct {
	RewardTokens    float64 `json:"reward_tokens"`
	Stablecoin      float64 `json:"stablecoin"`
	Staked          float64 `json:"staked"`
	LockYears       int     `json:"lock_years,omitempty"`
	StakingInterest float64 `json:"staking_interest"`
	VotingPower     float64 `json:"voting_power"`
	SavingsReceived float64 `json:"savings_received"`
}

// ParticipantID returns the canonical ID for the i-th participant
func ParticipantID(i int) string {
	return fmt.Sprintf(ParticipantIDFormat, i)
}

// TokenHoldings returns liquid, staked and accrued reward tokens together
func (p *Participant) TokenHoldings() float64 {
	return p.Balances.RewardTokens + p.Balances.Staked + p.Balances.StakingInterest
}

// AugmentedWealth values token holdings at tokenValue on top of cash wealth.
// Stablecoin is a sub-account of cash and is not added again.
func (p *Participant) AugmentedWealth(tokenValue float64) float64 {
	return p.Wealth + p.TokenHoldings()*tokenValue
}
