package metrics

import (
	"time"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

// Recorder feeds run and validation lifecycle events into the Prometheus
// collectors. It satisfies scenario.Recorder and projection.Recorder.
type Recorder struct{}

// NewRecorder creates a Recorder backed by the package collectors
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RunStarted counts a started run
func (*Recorder) RunStarted(kind domain.ScenarioKind) {
	RunsStarted.WithLabelValues(string(kind)).Inc()
}

// WeekCompleted counts the week and tracks the latest Gini and token issuance
func (*Recorder) WeekCompleted(kind domain.ScenarioKind, snap domain.WeeklySnapshot) {
	WeeksSimulated.WithLabelValues(string(kind)).Inc()
	LatestGini.WithLabelValues(string(kind)).Set(snap.Gini)
	if snap.Contracts.TokensIssuedWeek > 0 {
		TokensIssued.Add(snap.Contracts.TokensIssuedWeek)
	}
}

// RunFinished counts the final state and observes the run duration
func (*Recorder) RunFinished(kind domain.ScenarioKind, state string, duration time.Duration) {
	RunsFinished.WithLabelValues(string(kind), state).Inc()
	RunDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
}

// ValidationCompleted counts a projection validation by outcome
func (*Recorder) ValidationCompleted(confidence domain.ConfidenceLevel, market domain.MarketScenario, duration time.Duration) {
	Validations.WithLabelValues(string(confidence), string(market)).Inc()
	ValidationDuration.Observe(duration.Seconds())
}

// CacheLookup counts a report cache hit or miss
func (*Recorder) CacheLookup(hit bool) {
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	ReportCacheLookups.WithLabelValues(result).Inc()
}
