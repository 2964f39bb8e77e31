package projection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/scenario"
	"github.com/osse101/CoopTokenSim_Go/internal/testing/leaktest"
)

func seedRound() domain.ProjectionScenario {
	return domain.ProjectionScenario{
		Name:                    "seed_round",
		Investment:              5000,
		PopulationSize:          100,
		ParticipationRate:       0.75,
		ProjectedYearNRevenue:   9000,
		ProjectedROI:            13.66,
		ProjectedBreakEvenWeeks: domain.BreakEvenWeeksFromMonths(3.3),
		MarketWeights: map[domain.MarketScenario]float64{
			domain.MarketBull:         0.25,
			domain.MarketNormal:       0.5,
			domain.MarketBear:         0.2,
			domain.MarketCryptoWinter: 0.05,
		},
	}
}

func newValidator(t *testing.T, horizon int) *Validator {
	t.Helper()
	opts := DefaultOptions()
	opts.HorizonWeeks = horizon
	v, err := NewValidator(scenario.NewEngine(), opts, nil)
	require.NoError(t, err)
	return v
}

type recordedValidation struct {
	confidence domain.ConfidenceLevel
	market     domain.MarketScenario
}

type fakeRecorder struct {
	calls []recordedValidation
}

func (r *fakeRecorder) ValidationCompleted(c domain.ConfidenceLevel, m domain.MarketScenario, _ time.Duration) {
	r.calls = append(r.calls, recordedValidation{confidence: c, market: m})
}

func TestNewValidator_InvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.HorizonWeeks = 0

	_, err := NewValidator(scenario.NewEngine(), opts, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestReport_ROIVarianceInMatchingUnits(t *testing.T) {
	// ARRANGE: 100 weeks of 769.40 in fees on a 1000 investment is an ROI of 75.94
	opts := DefaultOptions()
	opts.TransactionFeeRate = 0
	opts.GroupMarginRate = 0
	v, err := NewValidator(scenario.NewEngine(), opts, nil)
	require.NoError(t, err)

	history := make([]domain.WeeklySnapshot, 100)
	for i := range history {
		history[i] = domain.WeeklySnapshot{Week: i + 1, Cashflow: domain.Cashflow{FeesCollected: 769.4}}
	}
	result := &scenario.Result{State: scenario.StateCompleted, Weeks: 100, Snapshots: history}
	ps := seedRound()
	ps.Investment = 1000

	// ACT
	report := v.Report(ps, result)

	// ASSERT
	assert.InDelta(t, 1366.0, float64(report.ProjectedROIPct), 1e-9)
	assert.InDelta(t, 7594.0, float64(report.ActualROIPct), 1e-6)
	assert.InDelta(t, 455.93, float64(report.ROIVariancePct), 0.01)
	assert.Less(t, float64(report.ROIVariancePct), 1000.0)
}

func TestVariancePct_RatioRegression(t *testing.T) {
	projected := domain.Ratio(13.66)
	actual := domain.Ratio(75.94)

	got := domain.VariancePct(projected.Percent(), actual.Percent())

	assert.InDelta(t, 455.9, float64(got), 0.05)
	assert.InDelta(t, float64(domain.RelativeVariance(13.66, 75.94)), float64(got), 1e-9)
}

func TestValidate_FiveYearRun(t *testing.T) {
	if testing.Short() {
		t.Skip("five year run")
	}

	// ARRANGE
	rec := &fakeRecorder{}
	v, err := NewValidator(scenario.NewEngine(), DefaultOptions(), rec)
	require.NoError(t, err)

	// ACT
	report, err := v.Validate(context.Background(), seedRound())

	// ASSERT
	require.NoError(t, err)
	assert.True(t, report.Completed)
	assert.Equal(t, DefaultHorizonWeeks, report.Weeks)
	assert.Equal(t, "seed_round", report.ScenarioName)

	assert.NotZero(t, report.RevenueVariancePct)
	assert.NotZero(t, report.ROIVariancePct)
	assert.NotZero(t, report.BreakEvenVariancePct)
	assert.InDelta(t, 1366.0, float64(report.ProjectedROIPct), 1e-9)
	assert.InDelta(t, 14.3, report.ProjectedBreakEvenWeeks, 1e-9)
	assert.Positive(t, report.ActualRevenue)

	assert.Contains(t, []domain.GrowthPattern{
		domain.GrowthLinear, domain.GrowthExponential, domain.GrowthPlateau, domain.GrowthDeclining,
	}, report.GrowthPattern)
	assert.Contains(t, domain.AllMarketScenarios, report.MarketScenario)
	assert.Contains(t, []domain.ConfidenceLevel{
		domain.ConfidenceHigh, domain.ConfidenceMedium, domain.ConfidenceLow,
	}, report.ConfidenceLevel)
	assert.Len(t, report.Mitigations, len(report.RiskFactors))
	assert.True(t, report.TokenImpact)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, report.ConfidenceLevel, rec.calls[0].confidence)
}

func TestNewValidator_HorizonCap(t *testing.T) {
	opts := DefaultOptions()
	opts.HorizonWeeks = domain.MaxRunWeeks + 1

	_, err := NewValidator(scenario.NewEngine(), opts, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestValidate_OversizedPopulation(t *testing.T) {
	v := newValidator(t, 10)
	ps := seedRound()
	ps.PopulationSize = 1 << 50

	_, err := v.Validate(context.Background(), ps)

	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestValidate_InvalidScenario(t *testing.T) {
	v := newValidator(t, 10)
	ps := seedRound()
	ps.MarketWeights[domain.MarketBull] = 0.9

	_, err := v.Validate(context.Background(), ps)

	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestValidate_Cancelled(t *testing.T) {
	v := newValidator(t, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := v.Validate(ctx, seedRound())

	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunConfig(t *testing.T) {
	v := newValidator(t, 104)
	ps := seedRound()
	ps.PopulationSize = 33
	ps.ParticipationRate = 0.4

	cfg := v.RunConfig(ps)

	assert.Equal(t, 33, cfg.ParticipantCount)
	assert.Equal(t, 104, cfg.Weeks)
	assert.Equal(t, int64(DefaultSeed), cfg.Seed)
	assert.True(t, cfg.EnableContracts)
	assert.InDelta(t, 0.4, cfg.Contracts.Reward.ParticipationRate, 1e-12)
	assert.NoError(t, cfg.Validate())
}

func TestCompareScenarios_Isolation(t *testing.T) {
	// ARRANGE
	v := newValidator(t, 52)
	small := seedRound()
	small.Name = "small"
	small.PopulationSize = 30
	large := seedRound()
	large.Name = "large"
	large.PopulationSize = 120
	large.Investment = 20000
	shy := seedRound()
	shy.Name = "shy"
	shy.ParticipationRate = 0.2
	scenarios := []domain.ProjectionScenario{small, large, shy}

	// ACT
	var cmp *Comparison
	var err error
	leaktest.CheckNoGoroutineLeak(t, func() {
		leaktest.CheckSequential(t, func() {
			cmp, err = v.CompareScenarios(context.Background(), scenarios)
		})
	})

	// ASSERT
	require.NoError(t, err)
	require.Len(t, cmp.Reports, 3)
	require.Len(t, cmp.Ranking, 3)
	for i, ps := range scenarios {
		alone, err := v.Validate(context.Background(), ps)
		require.NoError(t, err)
		assert.Equal(t, *alone, *cmp.Reports[i], ps.Name)
	}
	for i := 1; i < len(cmp.Ranking); i++ {
		assert.GreaterOrEqual(t, cmp.Ranking[i-1].Score, cmp.Ranking[i].Score)
		assert.Equal(t, i+1, cmp.Ranking[i].Rank)
	}
}

func TestCompareScenarios_Invalid(t *testing.T) {
	v := newValidator(t, 10)

	_, err := v.CompareScenarios(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = v.CompareScenarios(context.Background(), []domain.ProjectionScenario{seedRound(), seedRound()})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}
