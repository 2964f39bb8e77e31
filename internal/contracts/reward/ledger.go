// Package reward implements the weekly reward token ledger.
package reward

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

// Config controls the weekly distribution
type Config struct {
	ParticipationRate float64 `json:"participation_rate" validate:"gte=0,lte=1"`
	RewardMean        float64 `json:"reward_mean" validate:"gte=0"`
	RewardStdDev      float64 `json:"reward_std_dev" validate:"gte=0"`
	TokenValue        float64 `json:"token_value" validate:"gte=0"`
}

// DefaultConfig returns the standard distribution parameters
func DefaultConfig() Config {
	return Config{
		ParticipationRate: DefaultParticipationRate,
		RewardMean:        DefaultRewardMean,
		RewardStdDev:      DefaultRewardStdDev,
		TokenValue:        DefaultTokenValue,
	}
}

// Ledger tracks reward token balances for one run.
// Total supply always equals the sum of all balances, including system
// accounts such as the staking vault.
type Ledger struct {
	cfg      Config
	balances map[string]decimal.Decimal
	accounts []string
	supply   decimal.Decimal
}

// NewLedger creates an empty ledger
func NewLedger(cfg Config) *Ledger {
	return &Ledger{
		cfg:      cfg,
		balances: make(map[string]decimal.Decimal),
		supply:   decimal.Zero,
	}
}

// Open registers an account with a zero balance. Opening twice is a no-op.
func (l *Ledger) Open(account string) {
	if _, ok := l.balances[account]; ok {
		return
	}
	l.balances[account] = decimal.Zero
	l.accounts = append(l.accounts, account)
}

// Accounts returns account IDs in the order they were opened
func (l *Ledger) Accounts() []string {
	return append([]string(nil), l.accounts...)
}

// BalanceOf returns the balance of account, zero if unknown
func (l *Ledger) BalanceOf(account string) decimal.Decimal {
	return l.balances[account]
}

// TotalSupply returns the number of tokens in existence
func (l *Ledger) TotalSupply() decimal.Decimal {
	return l.supply
}

// SumBalances adds every account balance
func (l *Ledger) SumBalances() decimal.Decimal {
	total := decimal.Zero
	for _, account := range l.accounts {
		total = total.Add(l.balances[account])
	}
	return total
}

// TokenValue is the external value of one token
func (l *Ledger) TokenValue() float64 {
	return l.cfg.TokenValue
}

// Mint creates amount new tokens in account
func (l *Ledger) Mint(account string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: mint %s to %s", domain.ErrNonPositiveAmount, amount, account)
	}
	if _, ok := l.balances[account]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownParticipant, account)
	}
	l.balances[account] = l.balances[account].Add(amount)
	l.supply = l.supply.Add(amount)
	return nil
}

// Transfer moves amount from one account to another
func (l *Ledger) Transfer(from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: transfer %s from %s", domain.ErrNonPositiveAmount, amount, from)
	}
	if _, ok := l.balances[from]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownParticipant, from)
	}
	if _, ok := l.balances[to]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownParticipant, to)
	}
	if l.balances[from].LessThan(amount) {
		return fmt.Errorf("%w: %s holds %s, needs %s", domain.ErrInsufficientBalance, from, l.balances[from], amount)
	}
	l.balances[from] = l.balances[from].Sub(amount)
	l.balances[to] = l.balances[to].Add(amount)
	return nil
}

// TickResult reports one weekly distribution
type TickResult struct {
	Issued     decimal.Decimal
	Recipients int
}

// WeeklyTick rewards a participation-gated subset of participants.
// Each participant costs exactly two draws (gate, amount) whether or not they
// participate, so later draws do not shift with the gate outcome.
func (l *Ledger) WeeklyTick(participants []*domain.Participant, rng *utils.Rand) (TickResult, error) {
	result := TickResult{Issued: decimal.Zero}
	for _, p := range participants {
		l.Open(p.ID)
		participates := rng.Chance(l.cfg.ParticipationRate)
		amount := decimal.NewFromFloat(rng.GaussAtLeast(l.cfg.RewardMean, l.cfg.RewardStdDev, 0)).Round(TokenPrecision)
		if !participates || !amount.IsPositive() {
			continue
		}
		if err := l.Mint(p.ID, amount); err != nil {
			return result, err
		}
		result.Issued = result.Issued.Add(amount)
		result.Recipients++
	}
	return result, nil
}
