// Package staking locks reward tokens for whole years in exchange for
// duration-weighted interest and voting power.
package staking

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/CoopTokenSim_Go/internal/contracts/reward"
	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

// PeriodsPerYear returns how many compounding periods fit in a year, 0 if unknown
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Weekly:
		return domain.WeeksPerYear
	case Monthly:
		return domain.MonthsPerYear
	case Yearly:
		return 1
	default:
		return 0
	}
}

// Config controls interest and automatic staking
type Config struct {
	BaseAPR            float64 `json:"base_apr" validate:"gte=0"`
	LockBonus          float64 `json:"lock_bonus" validate:"gte=0"`
	AutoStakeThreshold float64 `json:"auto_stake_threshold" validate:"gte=0"`
	AutoStakeFraction  float64 `json:"auto_stake_fraction" validate:"gt=0,lte=1"`
	StakeProbability   float64 `json:"stake_probability" validate:"gte=0,lte=1"`
}

// DefaultConfig returns the standard vault parameters
func DefaultConfig() Config {
	return Config{
		BaseAPR:            DefaultBaseAPR,
		LockBonus:          DefaultLockBonus,
		AutoStakeThreshold: DefaultAutoStakeThreshold,
		AutoStakeFraction:  DefaultAutoStakeFraction,
		StakeProbability:   DefaultStakeProbability,
	}
}

// APR returns the annual rate for a lock duration: base plus 50% of base per extra year
func (c Config) APR(lockYears int) float64 {
	return c.BaseAPR * (1 + c.LockBonus*float64(lockYears-1))
}

// VotingPower is sqrt(amount) weighted by lock duration.
// It depends only on its arguments, so a locked position's power never changes.
func VotingPower(amount decimal.Decimal, lockYears int) float64 {
	if !amount.IsPositive() || lockYears < MinLockYears {
		return 0
	}
	return math.Sqrt(amount.InexactFloat64()) * (1 + VotingPowerLockBonus*float64(lockYears-1))
}

// Position is one time-locked stake
type Position struct {
	ID         string
	Owner      string
	Principal  decimal.Decimal
	LockYears  int
	Frequency  Frequency
	StakedWeek int
	Accrued    decimal.Decimal
	Closed     bool

	periodsPaid int
}

// MaturityWeek is the first week the position may be withdrawn
func (p *Position) MaturityWeek() int {
	return p.StakedWeek + p.LockYears*domain.WeeksPerYear
}

// VotingPower of the position while it is open
func (p *Position) VotingPower() float64 {
	if p.Closed {
		return 0
	}
	return VotingPower(p.Principal, p.LockYears)
}

// Vault holds every staking position of one run
type Vault struct {
	cfg          Config
	tokens       *reward.Ledger
	namespace    uuid.UUID
	positions    []*Position
	byID         map[string]*Position
	interestPaid decimal.Decimal
}

// NewVault creates a vault that escrows principal in tokens
func NewVault(cfg Config, tokens *reward.Ledger, namespace uuid.UUID) *Vault {
	tokens.Open(VaultAccount)
	return &Vault{
		cfg:          cfg,
		tokens:       tokens,
		namespace:    namespace,
		byID:         make(map[string]*Position),
		interestPaid: decimal.Zero,
	}
}

// Stake locks amount of owner's tokens for lockYears starting at week
func (v *Vault) Stake(owner string, amount decimal.Decimal, lockYears int, freq Frequency, week int) (*Position, error) {
	if lockYears < MinLockYears || lockYears > MaxLockYears {
		return nil, fmt.Errorf("%w: lock of %d years for %s, must be %d-%d",
			domain.ErrInvalidConfiguration, lockYears, owner, MinLockYears, MaxLockYears)
	}
	if freq.PeriodsPerYear() == 0 {
		return nil, fmt.Errorf("%w: unknown compounding frequency %q for %s", domain.ErrInvalidConfiguration, freq, owner)
	}
	if err := v.tokens.Transfer(owner, VaultAccount, amount); err != nil {
		return nil, err
	}

	id := uuid.NewSHA1(v.namespace, []byte(fmt.Sprintf(positionNameFormat, len(v.positions)+1)))
	p := &Position{
		ID:         id.String(),
		Owner:      owner,
		Principal:  amount,
		LockYears:  lockYears,
		Frequency:  freq,
		StakedWeek: week,
		Accrued:    decimal.Zero,
	}
	v.positions = append(v.positions, p)
	v.byID[p.ID] = p
	return p, nil
}

// accrue compounds every period that has fallen due by week.
// A period is due every 52/periods weeks of elapsed lock time; nothing accrues past maturity.
func (v *Vault) accrue(p *Position, week int) {
	if p.Closed {
		return
	}
	elapsed := min(week, p.MaturityWeek()) - p.StakedWeek
	if elapsed <= 0 {
		return
	}
	periods := p.Frequency.PeriodsPerYear()
	due := elapsed * periods / domain.WeeksPerYear
	rate := decimal.NewFromFloat(v.cfg.APR(p.LockYears) / float64(periods))
	for p.periodsPaid < due {
		p.Accrued = p.Accrued.Add(p.Principal.Add(p.Accrued).Mul(rate)).Round(interestPrecision)
		p.periodsPaid++
	}
}

// Withdraw closes a matured position, returning principal from escrow and
// minting the accrued interest. Before maturity it fails with ErrLockedPosition.
func (v *Vault) Withdraw(positionID string, week int) (principal, interest decimal.Decimal, err error) {
	p, ok := v.byID[positionID]
	if !ok || p.Closed {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", domain.ErrPositionNotFound, positionID)
	}
	if week < p.MaturityWeek() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: position %s of %s matures in week %d, now %d",
			domain.ErrLockedPosition, p.ID, p.Owner, p.MaturityWeek(), week)
	}

	v.accrue(p, week)
	if err := v.tokens.Transfer(VaultAccount, p.Owner, p.Principal); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if p.Accrued.IsPositive() {
		if err := v.tokens.Mint(p.Owner, p.Accrued); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		v.interestPaid = v.interestPaid.Add(p.Accrued)
	}
	p.Closed = true
	return p.Principal, p.Accrued, nil
}

// TickResult reports one week of vault activity
type TickResult struct {
	Staked    decimal.Decimal
	Withdrawn decimal.Decimal
	Interest  decimal.Decimal
	Opened    int
	Matured   int
}

// WeeklyTick accrues interest, pays out matured positions and lets eligible
// participants without an open position stake part of their balance
func (v *Vault) WeeklyTick(week int, participants []*domain.Participant, rng *utils.Rand) (TickResult, error) {
	result := TickResult{Staked: decimal.Zero, Withdrawn: decimal.Zero, Interest: decimal.Zero}

	for _, p := range v.positions {
		if p.Closed {
			continue
		}
		v.accrue(p, week)
		if week < p.MaturityWeek() {
			continue
		}
		principal, interest, err := v.Withdraw(p.ID, week)
		if err != nil {
			return result, err
		}
		result.Withdrawn = result.Withdrawn.Add(principal)
		result.Interest = result.Interest.Add(interest)
		result.Matured++
	}

	threshold := decimal.NewFromFloat(v.cfg.AutoStakeThreshold)
	fraction := decimal.NewFromFloat(v.cfg.AutoStakeFraction)
	for _, participant := range participants {
		balance := v.tokens.BalanceOf(participant.ID)
		if balance.LessThan(threshold) || v.hasOpenPosition(participant.ID) {
			continue
		}
		if !rng.Chance(v.cfg.StakeProbability) {
			continue
		}
		lockYears := MinLockYears + rng.IntN(MaxLockYears-MinLockYears+1)
		freq := Frequencies[rng.IntN(len(Frequencies))]
		amount := balance.Mul(fraction).Round(reward.TokenPrecision)
		if !amount.IsPositive() {
			continue
		}
		if _, err := v.Stake(participant.ID, amount, lockYears, freq, week); err != nil {
			return result, err
		}
		result.Staked = result.Staked.Add(amount)
		result.Opened++
	}
	return result, nil
}

func (v *Vault) hasOpenPosition(owner string) bool {
	for _, p := range v.positions {
		if p.Owner == owner && !p.Closed {
			return true
		}
	}
	return false
}

// Holding summarizes an owner's open positions
type Holding struct {
	Staked      decimal.Decimal
	Accrued     decimal.Decimal
	LockYears   int
	VotingPower float64
}

// HoldingOf aggregates owner's open positions; LockYears is the longest lock
func (v *Vault) HoldingOf(owner string) Holding {
	h := Holding{Staked: decimal.Zero, Accrued: decimal.Zero}
	for _, p := range v.positions {
		if p.Owner != owner || p.Closed {
			continue
		}
		h.Staked = h.Staked.Add(p.Principal)
		h.Accrued = h.Accrued.Add(p.Accrued)
		h.LockYears = max(h.LockYears, p.LockYears)
		h.VotingPower += p.VotingPower()
	}
	return h
}

// VotingPowerOf sums the voting power of owner's open positions
func (v *Vault) VotingPowerOf(owner string) float64 {
	return v.HoldingOf(owner).VotingPower
}

// Position looks up a position by ID
func (v *Vault) Position(id string) (*Position, bool) {
	p, ok := v.byID[id]
	return p, ok
}

// TotalStaked sums principal across open positions
func (v *Vault) TotalStaked() decimal.Decimal {
	total := decimal.Zero
	for _, p := range v.positions {
		if !p.Closed {
			total = total.Add(p.Principal)
		}
	}
	return total
}

// ActivePositions counts open positions
func (v *Vault) ActivePositions() int {
	n := 0
	for _, p := range v.positions {
		if !p.Closed {
			n++
		}
	}
	return n
}

// InterestPaid returns cumulative interest minted on withdrawal
func (v *Vault) InterestPaid() decimal.Decimal {
	return v.interestPaid
}
