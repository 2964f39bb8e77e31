package scenario

import (
	"fmt"

	"github.com/osse101/CoopTokenSim_Go/internal/coordinator"
	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/population"
	"github.com/osse101/CoopTokenSim_Go/internal/validation"
)

// Config is the immutable configuration of one simulation run
type Config struct {
	ParticipantCount           int     `json:"participant_count" validate:"gt=0,lte=10000"`
	Weeks                      int     `json:"weeks" validate:"gt=0,lte=1040"`
	GroupBuyingSavingsRate     float64 `json:"group_buying_savings_rate" validate:"gte=0,lte=1"`
	LocalProductionSavingsRate float64 `json:"local_production_savings_rate" validate:"gte=0,lte=1"`
	Seed                       int64   `json:"seed"`

	CoopFee         float64 `json:"coop_fee" validate:"gte=0"`
	FoodBudget      float64 `json:"food_budget" validate:"gt=0"`
	WealthLocation  float64 `json:"wealth_location"`
	WealthScale     float64 `json:"wealth_scale" validate:"gt=0"`
	EnableContracts bool    `json:"enable_contracts"`
	Shock           *Shock  `json:"shock,omitempty"`

	Contracts coordinator.Config `json:"contracts"`
}

// Shock scales every participant's income for a window of weeks
type Shock struct {
	Week             int     `json:"week" validate:"gte=1"`
	Duration         int     `json:"duration" validate:"gte=1"`
	IncomeMultiplier float64 `json:"income_multiplier" validate:"gte=0"`
}

// Active reports whether week falls inside the shock window
func (s *Shock) Active(week int) bool {
	return s != nil && week >= s.Week && week < s.Week+s.Duration
}

// DefaultConfig returns the baseline run configuration
func DefaultConfig() Config {
	return Config{
		ParticipantCount:           DefaultParticipantCount,
		Weeks:                      DefaultWeeks,
		GroupBuyingSavingsRate:     DefaultGroupBuyingSavingsRate,
		LocalProductionSavingsRate: DefaultLocalProductionSavingsRate,
		Seed:                       DefaultSeed,
		CoopFee:                    DefaultCoopFee,
		FoodBudget:                 DefaultFoodBudget,
		WealthLocation:             population.DefaultWealthLocation,
		WealthScale:                population.DefaultWealthScale,
		EnableContracts:            true,
		Contracts:                  coordinator.DefaultConfig(),
	}
}

// Validate checks the whole configuration before a run is created
func (c Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if c.Shock != nil && c.Shock.Week > c.Weeks {
		return fmt.Errorf("%w: shock starts in week %d after the last week %d", domain.ErrInvalidConfiguration, c.Shock.Week, c.Weeks)
	}
	return nil
}

// Population returns the population settings for this run
func (c Config) Population() population.Config {
	return population.Config{
		Size:           c.ParticipantCount,
		WealthLocation: c.WealthLocation,
		WealthScale:    c.WealthScale,
	}
}

// blendedInternalSavings returns the savings on an internal spend split
// between group buying and local production. The two discounts apply to
// disjoint parts of the spend, so they add and never compound.
func (c Config) blendedInternalSavings(internal float64) float64 {
	share := c.Contracts.LocalProductionShare
	return internal*(1-share)*c.GroupBuyingSavingsRate + internal*share*c.LocalProductionSavingsRate
}

// incomeMultiplier applies the shock, if any, to week
func (c Config) incomeMultiplier(week int) float64 {
	if c.Shock.Active(week) {
		return c.Shock.IncomeMultiplier
	}
	return 1
}
