// Package projection scores long-horizon cooperative runs against business
// projections and ranks competing projections.
package projection

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/logger"
	"github.com/osse101/CoopTokenSim_Go/internal/scenario"
	"github.com/osse101/CoopTokenSim_Go/internal/validation"
)

// Options configures how projections are simulated and how revenue is derived
type Options struct {
	HorizonWeeks        int     `json:"horizon_weeks" validate:"gt=0,lte=1040"`
	Seed                int64   `json:"seed"`
	TransactionFeeRate  float64 `json:"transaction_fee_rate" validate:"gte=0,lte=1"`
	GroupMarginRate     float64 `json:"group_margin_rate" validate:"gte=0,lte=1"`
	WeeklyOperatingCost float64 `json:"weekly_operating_cost" validate:"gte=0"`

	// Base supplies every run setting a projection does not override
	Base scenario.Config `json:"base"`
}

// DefaultOptions returns a five-year horizon on the default run configuration
func DefaultOptions() Options {
	return Options{
		HorizonWeeks:       DefaultHorizonWeeks,
		Seed:               DefaultSeed,
		TransactionFeeRate: DefaultTransactionFeeRate,
		GroupMarginRate:    DefaultGroupMarginRate,
		Base:               scenario.DefaultConfig(),
	}
}

// Recorder receives finished validations, typically for metrics
type Recorder interface {
	ValidationCompleted(confidence domain.ConfidenceLevel, market domain.MarketScenario, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ValidationCompleted(domain.ConfidenceLevel, domain.MarketScenario, time.Duration) {
}

// Validator runs projections through the scenario engine
type Validator struct {
	engine   *scenario.Engine
	opts     Options
	recorder Recorder
}

// NewValidator creates a validator. recorder may be nil.
func NewValidator(engine *scenario.Engine, opts Options, recorder Recorder) (*Validator, error) {
	if err := validation.Struct(opts); err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Validator{engine: engine, opts: opts, recorder: recorder}, nil
}

// Options returns the validator's options
func (v *Validator) Options() Options {
	return v.opts
}

// RunConfig is the cooperative run configuration used for ps
func (v *Validator) RunConfig(ps domain.ProjectionScenario) scenario.Config {
	cfg := v.opts.Base
	cfg.ParticipantCount = ps.PopulationSize
	cfg.Weeks = v.opts.HorizonWeeks
	cfg.Seed = v.opts.Seed
	cfg.EnableContracts = true
	cfg.Contracts.Reward.ParticipationRate = ps.ParticipationRate
	return cfg
}

// Validate simulates ps for the horizon and compares the outcome with its
// projection. Every call builds a fresh run, so reports never share ledgers.
func (v *Validator) Validate(ctx context.Context, ps domain.ProjectionScenario) (*domain.ValidationReport, error) {
	if err := validation.Struct(ps); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Info(LogMsgValidationStarted, "scenario", ps.Name, "population", ps.PopulationSize, "weeks", v.opts.HorizonWeeks)
	started := time.Now()

	result, err := v.engine.Execute(ctx, domain.ScenarioCooperative, v.RunConfig(ps), nil)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", ps.Name, err)
	}

	report := v.Report(ps, result)
	duration := time.Since(started)
	v.recorder.ValidationCompleted(report.ConfidenceLevel, report.MarketScenario, duration)
	log.Info(LogMsgValidationCompleted,
		"scenario", ps.Name,
		"confidence", report.ConfidenceLevel,
		"market", report.MarketScenario,
		"growth", report.GrowthPattern,
		"roi_variance_pct", report.ROIVariancePct,
		"duration_ms", duration.Milliseconds())
	return report, nil
}

// Report scores a finished run against ps. Projected and actual ROI are both
// converted to percentages before the variance is taken.
func (v *Validator) Report(ps domain.ProjectionScenario, result *scenario.Result) *domain.ValidationReport {
	revenue := WeeklyRevenue(result.Snapshots, v.opts)
	actualRevenue := YearNRevenue(revenue)
	actualROI := ActualROI(revenue, ps.Investment)

	breakEven, reached := BreakEvenWeek(revenue, ps.Investment)
	actualBreakEven := float64(breakEven)
	if !reached {
		actualBreakEven = float64(len(revenue))
	}

	r := &domain.ValidationReport{
		ScenarioName: ps.Name,
		Seed:         result.Seed,
		Weeks:        result.Weeks,
		Completed:    result.State == scenario.StateCompleted,

		ProjectedRevenue:   ps.ProjectedYearNRevenue,
		ActualRevenue:      actualRevenue,
		RevenueVariancePct: domain.RelativeVariance(ps.ProjectedYearNRevenue, actualRevenue),

		ProjectedROIPct: ps.ProjectedROI.Percent(),
		ActualROIPct:    actualROI.Percent(),

		ProjectedBreakEvenWeeks: ps.ProjectedBreakEvenWeeks,
		ActualBreakEvenWeeks:    actualBreakEven,
		BreakEvenReached:        reached,
		BreakEvenVariancePct:    domain.RelativeVariance(ps.ProjectedBreakEvenWeeks, actualBreakEven),

		GrowthPattern: ClassifyGrowth(revenue),
	}
	r.ROIVariancePct = domain.VariancePct(r.ProjectedROIPct, r.ActualROIPct)
	r.MarketScenario = ClassifyMarket(r.RevenueVariancePct)
	r.ConfidenceLevel = ClassifyConfidence(r.RevenueVariancePct, r.ROIVariancePct, r.BreakEvenVariancePct)

	if final, ok := result.Final(); ok {
		r.FinalGini = final.Gini
		r.TokenImpact = final.Contracts.TokenSupply > 0
	}
	r.RiskFactors, r.Mitigations = AssessRisks(r, ps)
	r.WeightedRevenue = WeightedRevenue(actualRevenue, ps.MarketWeights)
	r.CompositeScore = CompositeScore(r)
	return r
}

// Ranking places one report in a comparison
type Ranking struct {
	Rank     int     `json:"rank"`
	Scenario string  `json:"scenario"`
	Score    float64 `json:"score"`
}

// Comparison holds reports in input order and their ranking by composite score
type Comparison struct {
	Reports []*domain.ValidationReport `json:"reports"`
	Ranking []Ranking                  `json:"ranking"`
}

// CompareScenarios validates each scenario in turn and ranks the reports.
// Scenarios run strictly one after another, each on its own run.
func (v *Validator) CompareScenarios(ctx context.Context, scenarios []domain.ProjectionScenario) (*Comparison, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w: no scenarios to compare", domain.ErrInvalidConfiguration)
	}
	seen := make(map[string]struct{}, len(scenarios))
	for _, ps := range scenarios {
		if _, dup := seen[ps.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate scenario %q", domain.ErrInvalidConfiguration, ps.Name)
		}
		seen[ps.Name] = struct{}{}
	}

	cmp := &Comparison{Reports: make([]*domain.ValidationReport, 0, len(scenarios))}
	for _, ps := range scenarios {
		report, err := v.Validate(ctx, ps)
		if err != nil {
			return nil, err
		}
		cmp.Reports = append(cmp.Reports, report)
	}

	ranked := append([]*domain.ValidationReport(nil), cmp.Reports...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].CompositeScore > ranked[j].CompositeScore })
	cmp.Ranking = make([]Ranking, len(ranked))
	for i, r := range ranked {
		cmp.Ranking[i] = Ranking{Rank: i + 1, Scenario: r.ScenarioName, Score: r.CompositeScore}
	}

	logger.FromContext(ctx).Info(LogMsgComparisonCompleted, "scenarios", len(scenarios), "best", cmp.Ranking[0].Scenario)
	return cmp, nil
}
