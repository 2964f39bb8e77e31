package scenario

import (
	"fmt"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

// WeekError represents an error that occurred while simulating one week
type WeekError struct {
	RunID    string
	Scenario domain.ScenarioKind
	Week     int
	Err      error
}

func (e *WeekError) Error() string {
	return fmt.Sprintf("run %s (%s) week %d: %v", e.RunID, e.Scenario, e.Week, e.Err)
}

func (e *WeekError) Unwrap() error {
	return e.Err
}

// NewWeekError creates a new WeekError
func NewWeekError(r *Run, week int, err error) *WeekError {
	return &WeekError{
		RunID:    r.id,
		Scenario: r.kind,
		Week:     week,
		Err:      err,
	}
}
