// Package coordinator sequences the weekly tick of every token contract for one run.
package coordinator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/CoopTokenSim_Go/internal/contracts/governance"
	"github.com/osse101/CoopTokenSim_Go/internal/contracts/grouppurchase"
	"github.com/osse101/CoopTokenSim_Go/internal/contracts/reward"
	"github.com/osse101/CoopTokenSim_Go/internal/contracts/stablecoin"
	"github.com/osse101/CoopTokenSim_Go/internal/contracts/staking"
	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/logger"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

// Config bundles the configuration of every contract model
type Config struct {
	Reward               reward.Config        `json:"reward"`
	GroupPurchase        grouppurchase.Config `json:"group_purchase"`
	Staking              staking.Config       `json:"staking"`
	Governance           governance.Config    `json:"governance"`
	LocalProductionShare float64              `json:"local_production_share" validate:"gte=0,lte=1"`
}

// DefaultConfig returns defaults for every contract
func DefaultConfig() Config {
	return Config{
		Reward:               reward.DefaultConfig(),
		GroupPurchase:        grouppurchase.DefaultConfig(),
		Staking:              staking.DefaultConfig(),
		Governance:           governance.DefaultConfig(),
		LocalProductionShare: DefaultLocalProductionShare,
	}
}

// Coordinator owns one set of contract ledgers for exactly one run.
// It is not safe for concurrent use and refuses to serve a second run.
type Coordinator struct {
	cfg   Config
	runID string

	tokens *reward.Ledger
	stable *stablecoin.Ledger
	orders *grouppurchase.Book
	vault  *staking.Vault
	board  *governance.Board

	groupVolume decimal.Decimal
	issued      decimal.Decimal
}

// New creates a coordinator with fresh ledgers bound to runID
func New(cfg Config, runID string) *Coordinator {
	namespace := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf(runNamespaceFormat, runID)))
	tokens := reward.NewLedger(cfg.Reward)
	vault := staking.NewVault(cfg.Staking, tokens, namespace)
	return &Coordinator{
		cfg:         cfg,
		runID:       runID,
		tokens:      tokens,
		stable:      stablecoin.NewLedger(),
		orders:      grouppurchase.NewBook(cfg.GroupPurchase, namespace),
		vault:       vault,
		board:       governance.NewBoard(cfg.Governance, vault, namespace),
		groupVolume: decimal.Zero,
		issued:      decimal.Zero,
	}
}

// RunID is the run this coordinator belongs to
func (c *Coordinator) RunID() string {
	return c.runID
}

// TokenValue is the external value of one reward token
func (c *Coordinator) TokenValue() float64 {
	return c.tokens.TokenValue()
}

// Tokens exposes the reward token ledger
func (c *Coordinator) Tokens() *reward.Ledger { return c.tokens }

// Stablecoin exposes the stablecoin ledger
func (c *Coordinator) Stablecoin() *stablecoin.Ledger { return c.stable }

// Orders exposes the group purchase book
func (c *Coordinator) Orders() *grouppurchase.Book { return c.orders }

// Vault exposes the staking vault
func (c *Coordinator) Vault() *staking.Vault { return c.vault }

// Board exposes the governance board
func (c *Coordinator) Board() *governance.Board { return c.board }

// Tick runs one week across all contracts in dependency order:
// token issuance, stablecoin mint and spend, group purchase, staking and
// governance last. Savings and refunds are credited to participant wealth.
func (c *Coordinator) Tick(ctx context.Context, runID string, week int, participants []*domain.Participant, rng *utils.Rand) (domain.ContractStats, error) {
	if runID != c.runID {
		return domain.ContractStats{}, fmt.Errorf("%w: bound to %s, called for %s", domain.ErrCoordinatorBound, c.runID, runID)
	}
	log := logger.FromContext(ctx)

	issued, err := c.tokens.WeeklyTick(participants, rng)
	if err != nil {
		return domain.ContractStats{}, fmt.Errorf("week %d reward tick: %w", week, err)
	}
	c.issued = c.issued.Add(issued.Issued)

	spends, contributions := c.planSpend(participants, rng)
	if _, err := c.stable.WeeklyTick(spends); err != nil {
		return domain.ContractStats{}, fmt.Errorf("week %d stablecoin tick: %w", week, err)
	}

	savingsWeek, volumeWeek, err := c.tickGroupPurchase(ctx, week, participants, contributions)
	if err != nil {
		return domain.ContractStats{}, fmt.Errorf("week %d group purchase tick: %w", week, err)
	}

	if _, err := c.vault.WeeklyTick(week, participants, rng); err != nil {
		return domain.ContractStats{}, fmt.Errorf("week %d staking tick: %w", week, err)
	}

	gov, err := c.board.WeeklyTick(week, participants, rng)
	if err != nil {
		return domain.ContractStats{}, fmt.Errorf("week %d governance tick: %w", week, err)
	}
	for _, p := range gov.Closed {
		log.Debug(LogMsgProposalClosed, "proposal_id", p.ID, "state", p.State, "votes", p.VotesCast(), "turnout", p.Turnout())
	}

	if supply, sum := c.tokens.TotalSupply(), c.tokens.SumBalances(); !supply.Equal(sum) {
		return domain.ContractStats{}, fmt.Errorf("week %d: reward supply %s does not match balances %s", week, supply, sum)
	}

	c.syncBalances(participants)
	stats := c.stats(issued.Issued, savingsWeek, volumeWeek)
	log.Debug(LogMsgContractsTicked, "week", week, "tokens_issued", stats.TokensIssuedWeek, "token_supply", stats.TokenSupply)
	return stats, nil
}

// planSpend splits each participant's spend into stablecoin categories.
// A participant who joins the open group purchase routes part of their
// external spend into it.
func (c *Coordinator) planSpend(participants []*domain.Participant, rng *utils.Rand) ([]stablecoin.Spend, []stablecoin.CategoryAmount) {
	share := c.cfg.LocalProductionShare
	gp := c.cfg.GroupPurchase

	spends := make([]stablecoin.Spend, 0, len(participants))
	contributions := make([]stablecoin.CategoryAmount, len(participants))
	for i, p := range participants {
		joins := rng.Chance(gp.JoinProbability)
		external := p.ExternalSpend
		contribution := 0.0
		if joins {
			contribution = external * gp.ContributionShare
			external -= contribution
		}

		s := stablecoin.Spend{ParticipantID: p.ID}
		s.ByCategory = appendPositive(s.ByCategory, domain.CategoryGroupBuy, p.InternalSpend*(1-share))
		s.ByCategory = appendPositive(s.ByCategory, domain.CategoryLocalProduction, p.InternalSpend*share)
		s.ByCategory = appendPositive(s.ByCategory, domain.CategoryExternal, external)
		s.ByCategory = appendPositive(s.ByCategory, domain.CategoryGroupPurchase, contribution)
		spends = append(spends, s)

		contributions[i] = stablecoin.CategoryAmount{Category: domain.CategoryGroupPurchase, Amount: stablecoin.Amount(contribution)}
	}
	return spends, contributions
}

func appendPositive(list []stablecoin.CategoryAmount, category domain.SpendCategory, value float64) []stablecoin.CategoryAmount {
	amount := stablecoin.Amount(value)
	if !amount.IsPositive() {
		return list
	}
	return append(list, stablecoin.CategoryAmount{Category: category, Amount: amount})
}

// tickGroupPurchase records this week's contributions and settles the order
// at its boundary. Executed savings are cash; refunds come back as stablecoin
// backed by the returned cash.
func (c *Coordinator) tickGroupPurchase(ctx context.Context, week int, participants []*domain.Participant, contributions []stablecoin.CategoryAmount) (savings, volume float64, err error) {
	order := c.orders.Current(week)
	for i, p := range participants {
		if !contributions[i].Amount.IsPositive() {
			continue
		}
		if err := order.Contribute(p.ID, contributions[i].Amount); err != nil {
			return 0, 0, err
		}
	}

	settlement, err := c.orders.Tick(week)
	if err != nil || settlement == nil {
		return 0, 0, err
	}

	byID := make(map[string]*domain.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}
	for _, payout := range settlement.Payouts {
		p, ok := byID[payout.ParticipantID]
		if !ok {
			return 0, 0, fmt.Errorf("%w: %s in order %s", domain.ErrUnknownParticipant, payout.ParticipantID, settlement.OrderID)
		}
		amount := payout.Amount.InexactFloat64()
		p.Wealth += amount
		if settlement.State == grouppurchase.OrderExecuted {
			p.Balances.SavingsReceived += amount
			continue
		}
		if err := c.stable.Mint(p.ID, payout.Amount); err != nil {
			return 0, 0, err
		}
	}

	log := logger.FromContext(ctx)
	if settlement.Shortfall != nil {
		log.Debug(LogMsgOrderSettled, "order_id", settlement.OrderID, "state", settlement.State, "reason", settlement.Shortfall)
		return 0, 0, nil
	}
	log.Debug(LogMsgOrderSettled, "order_id", settlement.OrderID, "state", settlement.State, "volume", settlement.Volume)
	volume = settlement.Volume.InexactFloat64()
	c.groupVolume = c.groupVolume.Add(settlement.Volume)
	return settlement.Total().InexactFloat64(), volume, nil
}

// syncBalances mirrors ledger positions onto each participant
func (c *Coordinator) syncBalances(participants []*domain.Participant) {
	for _, p := range participants {
		h := c.vault.HoldingOf(p.ID)
		p.Balances.RewardTokens = c.tokens.BalanceOf(p.ID).InexactFloat64()
		p.Balances.Stablecoin = c.stable.BalanceOf(p.ID).InexactFloat64()
		p.Balances.Staked = h.Staked.InexactFloat64()
		p.Balances.StakingInterest = h.Accrued.InexactFloat64()
		p.Balances.LockYears = h.LockYears
		p.Balances.VotingPower = h.VotingPower
	}
}

func (c *Coordinator) stats(issuedWeek decimal.Decimal, savingsWeek, volumeWeek float64) domain.ContractStats {
	return domain.ContractStats{
		TokensIssuedWeek:   issuedWeek.InexactFloat64(),
		TokenSupply:        c.tokens.TotalSupply().InexactFloat64(),
		StablecoinMinted:   c.stable.TotalMinted().InexactFloat64(),
		StablecoinBurned:   c.stable.TotalBurned().InexactFloat64(),
		SavingsWeek:        savingsWeek,
		SavingsDistributed: c.orders.SavingsDistributed().InexactFloat64(),
		GroupVolumeWeek:    volumeWeek,
		OrdersExecuted:     c.orders.Executed(),
		OrdersRefunded:     c.orders.Refunded(),
		TotalStaked:        c.vault.TotalStaked().InexactFloat64(),
		ActivePositions:    c.vault.ActivePositions(),
		InterestPaid:       c.vault.InterestPaid().InexactFloat64(),
		ProposalsPassed:    c.board.Passed(),
		ProposalsFailed:    c.board.Failed(),
		ProposalsExpired:   c.board.Expired(),
		GovernanceTurnout:  c.board.LastTurnout(),
		VotesRejected:      c.board.Rejected(),
	}
}

// Totals are cumulative cross-model figures for the run
type Totals struct {
	TokensIssued       float64 `json:"tokens_issued"`
	SavingsDistributed float64 `json:"savings_distributed"`
	GroupVolume        float64 `json:"group_volume"`
	GovernanceTurnout  float64 `json:"governance_turnout"`
}

// Totals returns cumulative figures across all contracts
func (c *Coordinator) Totals() Totals {
	return Totals{
		TokensIssued:       c.issued.InexactFloat64(),
		SavingsDistributed: c.orders.SavingsDistributed().InexactFloat64(),
		GroupVolume:        c.groupVolume.InexactFloat64(),
		GovernanceTurnout:  c.board.LastTurnout(),
	}
}

// ParticipantStats compares a participant's cash wealth with their token-augmented wealth
type ParticipantStats struct {
	ID              string  `json:"id"`
	Wealth          float64 `json:"wealth"`
	AugmentedWealth float64 `json:"augmented_wealth"`
	TokenHoldings   float64 `json:"token_holdings"`
	VotingPower     float64 `json:"voting_power"`
	SavingsReceived float64 `json:"savings_received"`
}

// ParticipantStats aggregates per-participant figures at the current week
func (c *Coordinator) ParticipantStats(participants []*domain.Participant) []ParticipantStats {
	out := make([]ParticipantStats, len(participants))
	for i, p := range participants {
		out[i] = ParticipantStats{
			ID:              p.ID,
			Wealth:          p.Wealth,
			AugmentedWealth: p.AugmentedWealth(c.TokenValue()),
			TokenHoldings:   p.TokenHoldings(),
			VotingPower:     p.Balances.VotingPower,
			SavingsReceived: p.Balances.SavingsReceived,
		}
	}
	return out
}
