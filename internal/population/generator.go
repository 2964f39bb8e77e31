// Package population creates the participants of a simulation run.
package population

import (
	"fmt"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

// Config describes the population to draw
type Config struct {
	Size           int     `json:"size"`
	WealthLocation float64 `json:"wealth_location"`
	WealthScale    float64 `json:"wealth_scale"`
}

// DefaultConfig returns a config for size participants with the default wealth distribution
func DefaultConfig(size int) Config {
	return Config{
		Size:           size,
		WealthLocation: DefaultWealthLocation,
		WealthScale:    DefaultWealthScale,
	}
}

// Validate checks the config before any draw is made
func (c Config) Validate() error {
	if c.Size <= 0 || c.Size > domain.MaxPopulationSize {
		return fmt.Errorf("%w: population size must be in [1, %d], got %d", domain.ErrInvalidConfiguration, domain.MaxPopulationSize, c.Size)
	}
	if c.WealthScale <= 0 {
		return fmt.Errorf("%w: wealth scale must be positive, got %g", domain.ErrInvalidConfiguration, c.WealthScale)
	}
	return nil
}

// Generate draws cfg.Size participants from rng.
// Initial wealth is drawn for the whole population before any per-participant
// attribute, so the wealth vector depends only on the seed and the size.
func Generate(cfg Config, rng *utils.Rand) ([]*domain.Participant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	wealth := make([]float64, cfg.Size)
	for i := range wealth {
		wealth[i] = rng.LogNormal(cfg.WealthLocation, cfg.WealthScale)
	}

	participants := make([]*domain.Participant, cfg.Size)
	for i := range participants {
		participants[i] = &domain.Participant{
			ID:                 domain.ParticipantID(i),
			InitialWealth:      wealth[i],
			Wealth:             wealth[i],
			WeeklyBudget:       rng.GaussAtLeast(BudgetMean, BudgetStd, BudgetFloor),
			InternalSpendRatio: rng.GaussClamped(InternalRatioMean, InternalRatioStd, 0, 1),
			WeeklyIncome:       rng.GaussAtLeast(IncomeMean, IncomeStd, IncomeFloor),
		}
	}
	return participants, nil
}

// Clone deep-copies a population so two scenarios can start from identical state
func Clone(participants []*domain.Participant) []*domain.Participant {
	out := make([]*domain.Participant, len(participants))
	for i, p := range participants {
		c := *p
		out[i] = &c
	}
	return out
}

// Wealth extracts the cash wealth vector
func Wealth(participants []*domain.Participant) []float64 {
	out := make([]float64, len(participants))
	for i, p := range participants {
		out[i] = p.Wealth
	}
	return out
}

// MeanBudget returns the average weekly food budget, used for the poverty line
func MeanBudget(participants []*domain.Participant) float64 {
	budgets := make([]float64, len(participants))
	for i, p := range participants {
		budgets[i] = p.WeeklyBudget
	}
	return utils.Mean(budgets)
}
