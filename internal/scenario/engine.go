// Package scenario advances a simulated population week by week under the
// traditional or the cooperative economic regime.
package scenario

import (
	"context"
	"errors"
	"time"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/logger"
)

// Recorder receives run lifecycle events, typically for metrics
type Recorder interface {
	RunStarted(kind domain.ScenarioKind)
	WeekCompleted(kind domain.ScenarioKind, snap domain.WeeklySnapshot)
	RunFinished(kind domain.ScenarioKind, state string, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RunStarted(domain.ScenarioKind) {}

func (noopRecorder) WeekCompleted(domain.ScenarioKind, domain.WeeklySnapshot) {}

func (noopRecorder) RunFinished(domain.ScenarioKind, string, time.Duration) {}

// Engine executes runs. It holds no run state, so one engine may execute
// many runs concurrently; each run still builds its own coordinator.
type Engine struct {
	clock    Clock
	recorder Recorder
	newRunID func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the clock used for run timings
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRecorder sets the lifecycle recorder
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithRunIDs sets the run ID generator
func WithRunIDs(gen func() string) Option {
	return func(e *Engine) { e.newRunID = gen }
}

// NewEngine creates a new scenario execution engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:    NewRealClock(),
		recorder: noopRecorder{},
		newRunID: logger.GenerateRunID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs kind for cfg.Weeks weeks. observer, if not nil, receives each
// completed week. On cancellation the partial result is returned together
// with the context error.
func (e *Engine) Execute(ctx context.Context, kind domain.ScenarioKind, cfg Config, observer Observer) (*Result, error) {
	runID := e.newRunID()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.FromContext(ctx)

	run, err := NewRun(runID, kind, cfg, func(snap domain.WeeklySnapshot) {
		e.recorder.WeekCompleted(kind, snap)
		if observer != nil {
			observer(snap)
		}
	})
	if err != nil {
		return nil, err
	}

	result := NewResult(run, cfg.Seed, e.clock.Now())
	e.recorder.RunStarted(kind)
	log.Info(LogMsgRunStarted, "scenario", kind, "participants", cfg.ParticipantCount, "weeks", cfg.Weeks, "seed", cfg.Seed)

	for run.State() == StateInitialized || run.State() == StateRunning {
		if _, err = run.Step(ctx); err != nil {
			break
		}
	}

	result.Complete(run, e.clock.Now())
	e.recorder.RunFinished(kind, string(run.State()), time.Duration(result.DurationMS)*time.Millisecond)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn(LogMsgRunAborted, "scenario", kind, "completed_weeks", run.Week(), "error", err)
		}
		return result, err
	}

	final, _ := result.Final()
	log.Info(LogMsgRunCompleted, "scenario", kind, "weeks", result.Weeks, "final_gini", final.Gini, "duration_ms", result.DurationMS)
	return result, nil
}
