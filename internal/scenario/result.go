package scenario

import (
	"encoding/json"
	"time"

	"github.com/osse101/CoopTokenSim_Go/internal/coordinator"
	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

// Result represents the complete result of one run
type Result struct {
	RunID        string                         `json:"run_id"`
	Scenario     domain.ScenarioKind            `json:"scenario"`
	Seed         int64                          `json:"seed"`
	State        State                          `json:"state"`
	Weeks        int                            `json:"weeks"`
	DurationMS   int64                          `json:"duration_ms"`
	StartedAt    time.Time                      `json:"started_at"`
	CompletedAt  time.Time                      `json:"completed_at"`
	Snapshots    []domain.WeeklySnapshot        `json:"snapshots"`
	Participants []coordinator.ParticipantStats `json:"participants,omitempty"`
	Totals       *coordinator.Totals            `json:"totals,omitempty"`
	Error        string                         `json:"error,omitempty"`
}

// NewResult creates a Result for run started at startedAt
func NewResult(r *Run, seed int64, startedAt time.Time) *Result {
	return &Result{
		RunID:     r.ID(),
		Scenario:  r.Kind(),
		Seed:      seed,
		State:     r.State(),
		StartedAt: startedAt,
		Snapshots: make([]domain.WeeklySnapshot, 0),
	}
}

// Complete records the run's final state and calculates duration
func (res *Result) Complete(r *Run, completedAt time.Time) {
	res.State = r.State()
	res.Snapshots = r.Snapshots()
	res.Weeks = len(res.Snapshots)
	res.CompletedAt = completedAt
	res.DurationMS = completedAt.Sub(res.StartedAt).Milliseconds()
	if err := r.Err(); err != nil {
		res.Error = err.Error()
	}

	if coord := r.Coordinator(); coord != nil {
		totals := coord.Totals()
		res.Totals = &totals
		res.Participants = coord.ParticipantStats(r.Participants())
	}
}

// Final returns the last snapshot, false for a run that never completed a week
func (res *Result) Final() (domain.WeeklySnapshot, bool) {
	if len(res.Snapshots) == 0 {
		return domain.WeeklySnapshot{}, false
	}
	return res.Snapshots[len(res.Snapshots)-1], true
}

// ToJSON converts the result to JSON bytes
func (res *Result) ToJSON() ([]byte, error) {
	return json.Marshal(res)
}

// ToPrettyJSON converts the result to indented JSON bytes
func (res *Result) ToPrettyJSON() ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}
