package scenario

import (
	"context"
	"fmt"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/narrative"
)

// Comparison holds a traditional and a cooperative run over the same population
type Comparison struct {
	Traditional *Result              `json:"traditional"`
	Cooperative *Result              `json:"cooperative"`
	KeyEvents   []narrative.KeyEvent `json:"key_events"`
	Summary     narrative.Summary    `json:"summary"`
}

// Compare runs the traditional then the cooperative scenario with the same
// seed. The runs are sequential and share nothing but the configuration.
func (e *Engine) Compare(ctx context.Context, cfg Config) (*Comparison, error) {
	traditional, err := e.Execute(ctx, domain.ScenarioTraditional, cfg, nil)
	if err != nil {
		return nil, err
	}
	cooperative, err := e.Execute(ctx, domain.ScenarioCooperative, cfg, nil)
	if err != nil {
		return nil, err
	}

	events := KeyEvents(cooperative.Snapshots)
	return &Comparison{
		Traditional: traditional,
		Cooperative: cooperative,
		KeyEvents:   events,
		Summary:     narrative.Summarize(traditional.Snapshots, cooperative.Snapshots, events),
	}, nil
}

// KeyEvents finds weeks where inequality or poverty fell sharply against the previous week
func KeyEvents(history []domain.WeeklySnapshot) []narrative.KeyEvent {
	var events []narrative.KeyEvent
	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]
		if threshold := prev.Gini * EqualityImprovementFactor; cur.Gini < threshold {
			events = append(events, narrative.KeyEvent{
				Week:        cur.Week,
				Type:        EventEqualityImprovement,
				Description: fmt.Sprintf("Significant reduction in wealth inequality (Gini < %.3f)", threshold),
			})
		}
		if threshold := prev.PovertyRate * PovertyReductionFactor; cur.PovertyRate < threshold {
			events = append(events, narrative.KeyEvent{
				Week:        cur.Week,
				Type:        EventPovertyReduction,
				Description: fmt.Sprintf("Significant poverty reduction (rate < %.1f%%)", threshold*100),
			})
		}
	}
	return events
}
