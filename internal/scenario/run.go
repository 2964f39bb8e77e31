package scenario

import (
	"context"
	"fmt"

	"github.com/osse101/CoopTokenSim_Go/internal/coordinator"
	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/logger"
	"github.com/osse101/CoopTokenSim_Go/internal/population"
	"github.com/osse101/CoopTokenSim_Go/internal/stats"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

// State is the lifecycle state of a run
type State string

const (
	StateInitialized State = "initialized"
	StateRunning     State = "running"
	StateCompleted   State = "completed"
	StateAborted     State = "aborted"
	StateFailed      State = "failed"
)

// Observer receives every completed week. It is called between weeks,
// never while a week is in progress.
type Observer func(domain.WeeklySnapshot)

// Run is one scenario simulated week by week.
// A run owns its participants, random stream and coordinator; none of them
// are reachable from any other run.
type Run struct {
	id    string
	kind  domain.ScenarioKind
	cfg   Config
	rng   *utils.Rand
	coord *coordinator.Coordinator

	participants []*domain.Participant
	snapshots    []domain.WeeklySnapshot
	state        State
	week         int
	observer     Observer
	err          error

	cashflow domain.Cashflow
}

// NewRun validates cfg and draws the population for a run of kind.
// The population depends only on the seed, so every kind starts identical.
func NewRun(runID string, kind domain.ScenarioKind, cfg Config, observer Observer) (*Run, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown scenario %q", domain.ErrInvalidConfiguration, kind)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := utils.NewRand(cfg.Seed)
	participants, err := population.Generate(cfg.Population(), rng)
	if err != nil {
		return nil, err
	}

	r := &Run{
		id:           runID,
		kind:         kind,
		cfg:          cfg,
		rng:          rng,
		participants: participants,
		snapshots:    make([]domain.WeeklySnapshot, 0, cfg.Weeks),
		state:        StateInitialized,
		observer:     observer,
	}
	if kind == domain.ScenarioCooperative && cfg.EnableContracts {
		r.coord = coordinator.New(cfg.Contracts, runID)
	}
	return r, nil
}

// ID returns the run ID
func (r *Run) ID() string { return r.id }

// Kind returns the scenario being simulated
func (r *Run) Kind() domain.ScenarioKind { return r.kind }

// State returns the lifecycle state
func (r *Run) State() State { return r.state }

// Week returns the last completed week, 0 before the first
func (r *Run) Week() int { return r.week }

// Err returns the error that stopped the run, if any
func (r *Run) Err() error { return r.err }

// Snapshots returns a copy of the completed weeks
func (r *Run) Snapshots() []domain.WeeklySnapshot {
	return append([]domain.WeeklySnapshot(nil), r.snapshots...)
}

// Participants returns the run's participants. Callers must not mutate them
// while the run is active.
func (r *Run) Participants() []*domain.Participant {
	return r.participants
}

// Coordinator returns the run's coordinator, nil when contracts are disabled
// or the run was aborted
func (r *Run) Coordinator() *coordinator.Coordinator {
	return r.coord
}

// Step simulates the next week. Cancellation is honoured only here, at the
// boundary, so a week is either fully applied or not at all.
func (r *Run) Step(ctx context.Context) (domain.WeeklySnapshot, error) {
	switch r.state {
	case StateInitialized:
		r.state = StateRunning
	case StateRunning:
	default:
		return domain.WeeklySnapshot{}, fmt.Errorf("%w: run %s is %s", domain.ErrRunNotRunnable, r.id, r.state)
	}
	if err := ctx.Err(); err != nil {
		r.abort(err)
		return domain.WeeklySnapshot{}, NewWeekError(r, r.week+1, err)
	}

	week := r.week + 1
	snap, err := r.tick(ctx, week)
	if err != nil {
		r.state = StateFailed
		r.err = NewWeekError(r, week, err)
		return domain.WeeklySnapshot{}, r.err
	}

	r.week = week
	r.snapshots = append(r.snapshots, snap)
	if r.week == r.cfg.Weeks {
		r.state = StateCompleted
	}
	if r.observer != nil {
		r.observer(snap)
	}
	logger.FromContext(ctx).Debug(LogMsgWeekComplete, "scenario", r.kind, "week", week, "gini", snap.Gini)
	return snap, nil
}

// abort discards the in-progress ledgers; completed snapshots stay valid
func (r *Run) abort(err error) {
	r.state = StateAborted
	r.err = err
	r.coord = nil
}

// tick applies one week to every participant and measures the result
func (r *Run) tick(ctx context.Context, week int) (domain.WeeklySnapshot, error) {
	r.cashflow = domain.Cashflow{}
	multiplier := r.cfg.incomeMultiplier(week)

	for _, p := range r.participants {
		income := p.WeeklyIncome * multiplier
		p.Wealth += income
		r.cashflow.Income += income

		if r.kind == domain.ScenarioTraditional {
			r.spendTraditional(p)
		} else {
			r.spendCooperative(p)
		}
	}

	var contracts domain.ContractStats
	if r.kind == domain.ScenarioCooperative {
		if r.coord != nil {
			var err error
			contracts, err = r.coord.Tick(ctx, r.id, week, r.participants, r.rng)
			if err != nil {
				return domain.WeeklySnapshot{}, err
			}
		} else {
			contracts = r.distributeRewards()
		}
	}

	for _, p := range r.participants {
		p.Wealth = utils.FloorAt(p.Wealth, 0)
	}
	return r.snapshot(week, contracts), nil
}

func (r *Run) spendTraditional(p *domain.Participant) {
	spend := min(p.WeeklyBudget, p.Wealth)
	p.Wealth -= spend
	p.InternalSpend = 0
	p.ExternalSpend = spend
	r.cashflow.ExternalSpend += spend
}

// spendCooperative applies the discounted budget, scaled down to what the
// participant can afford, then the membership fee
func (r *Run) spendCooperative(p *domain.Participant) {
	internal := p.WeeklyBudget * p.InternalSpendRatio
	external := p.WeeklyBudget - internal
	savings := r.cfg.blendedInternalSavings(internal)
	internalCost := internal - savings

	cost := internalCost + external
	if cost > p.Wealth && cost > 0 {
		scale := utils.FloorAt(p.Wealth, 0) / cost
		internalCost *= scale
		external *= scale
		savings *= scale
		cost = internalCost + external
	}
	p.Wealth -= cost
	p.InternalSpend = internalCost
	p.ExternalSpend = external

	fee := min(r.cfg.CoopFee, utils.FloorAt(p.Wealth, 0))
	p.Wealth -= fee

	r.cashflow.InternalSpend += internalCost
	r.cashflow.ExternalSpend += external
	r.cashflow.Savings += savings
	r.cashflow.FeesCollected += fee
}

// distributeRewards is the contract-free reward path: a gated Gaussian draw
// credited straight to each participant's token balance
func (r *Run) distributeRewards() domain.ContractStats {
	rc := r.cfg.Contracts.Reward
	var stats domain.ContractStats
	supply := 0.0
	for _, p := range r.participants {
		participates := r.rng.Chance(rc.ParticipationRate)
		amount := r.rng.GaussAtLeast(rc.RewardMean, rc.RewardStdDev, 0)
		if participates {
			p.Balances.RewardTokens += amount
			stats.TokensIssuedWeek += amount
		}
		supply += p.Balances.RewardTokens
	}
	stats.TokenSupply = supply
	return stats
}

func (r *Run) tokenValue() float64 {
	if r.kind == domain.ScenarioTraditional {
		return 0
	}
	return r.cfg.Contracts.Reward.TokenValue
}

// snapshot measures the population after week. Cooperative wealth includes
// token holdings at their external value.
func (r *Run) snapshot(week int, contracts domain.ContractStats) domain.WeeklySnapshot {
	tokenValue := r.tokenValue()
	wealth := make([]float64, len(r.participants))
	for i, p := range r.participants {
		wealth[i] = p.AugmentedWealth(tokenValue)
	}
	s := stats.Summarize(wealth, r.cfg.FoodBudget)

	snap := domain.WeeklySnapshot{
		Week:                week,
		Year:                domain.YearOf(week),
		Quarter:             domain.QuarterOf(week),
		Scenario:            r.kind,
		Gini:                s.Gini,
		WealthGap:           s.WealthGap,
		WealthGapDefined:    s.WealthGapDefined,
		PovertyRate:         s.PovertyRate,
		BottomQuintileShare: s.BottomQuintileShare,
		AverageWealth:       s.Average,
		MedianWealth:        s.Median,
		TotalWealth:         s.Total,
		P10Wealth:           s.P10,
		P90Wealth:           s.P90,
		Cashflow:            r.cashflow,
		Contracts:           contracts,
	}
	if n := len(r.snapshots); n > 0 {
		prev := r.snapshots[n-1]
		snap.Trends = domain.Trends{
			AverageWealth: utils.RelativeChange(prev.AverageWealth, snap.AverageWealth),
			Gini:          utils.RelativeChange(prev.Gini, snap.Gini),
			PovertyRate:   utils.RelativeChange(prev.PovertyRate, snap.PovertyRate),
		}
	}
	return snap
}
