package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/osse101/CoopTokenSim_Go/internal/coordinator"
	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/narrative"
	"github.com/osse101/CoopTokenSim_Go/internal/scenario"
)

// Simulator runs a traditional and a cooperative scenario on the same population
type Simulator interface {
	Compare(ctx context.Context, cfg scenario.Config) (*scenario.Comparison, error)
}

// PresetSource resolves named run configurations
type PresetSource interface {
	Get(name string) (scenario.Preset, bool)
	List() []scenario.Preset
}

type SimulationHandler struct {
	simulator Simulator
	presets   PresetSource
	defaults  scenario.Config
}

// NewSimulationHandler creates a handler. defaults is used when a request names neither preset nor config.
func NewSimulationHandler(simulator Simulator, presets PresetSource, defaults scenario.Config) *SimulationHandler {
	return &SimulationHandler{
		simulator: simulator,
		presets:   presets,
		defaults:  defaults,
	}
}

// SimulateRequest selects a run configuration and optionally overrides its size and seed
type SimulateRequest struct {
	Preset           string           `json:"preset,omitempty"`
	Config           *scenario.Config `json:"config,omitempty"`
	Seed             *int64           `json:"seed,omitempty"`
	Weeks            *int             `json:"weeks,omitempty" validate:"omitempty,gt=0,lte=1040"`
	ParticipantCount *int             `json:"participant_count,omitempty" validate:"omitempty,gt=0,lte=10000"`
}

// RunSummary is a run without its weekly series
type RunSummary struct {
	RunID      string                 `json:"run_id"`
	Scenario   domain.ScenarioKind    `json:"scenario"`
	State      scenario.State         `json:"state"`
	Weeks      int                    `json:"weeks"`
	DurationMS int64                  `json:"duration_ms"`
	Final      *domain.WeeklySnapshot `json:"final,omitempty"`
	Totals     *coordinator.Totals    `json:"totals,omitempty"`
}

// SimulateResponse is the outcome of a comparison run
type SimulateResponse struct {
	Config      scenario.Config      `json:"config"`
	Traditional interface{}          `json:"traditional"`
	Cooperative interface{}          `json:"cooperative"`
	KeyEvents   []narrative.KeyEvent `json:"key_events"`
	Summary     narrative.Summary    `json:"summary"`
}

// HandleSimulate runs a comparison of the traditional and cooperative economies
// @Summary Run a comparison simulation
// @Tags simulation
// @Accept json
// @Produce json
// @Param detail query string false "full (default) or summary"
// @Success 200 {object} SimulateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/simulate [post]
func (h *SimulationHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	detail := GetOptionalQueryParam(r, QueryDetail, DetailFull)
	if detail != DetailFull && detail != DetailSummary {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, QueryDetail, detail))
		return
	}

	var req SimulateRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpSimulate); err != nil {
		return
	}

	cfg, err := h.resolveConfig(req)
	if err != nil {
		respondServiceError(w, r, OpSimulate, err)
		return
	}

	cmp, err := h.simulator.Compare(r.Context(), cfg)
	if err != nil {
		respondServiceError(w, r, OpSimulate, err)
		return
	}

	resp := SimulateResponse{
		Config:      cfg,
		Traditional: cmp.Traditional,
		Cooperative: cmp.Cooperative,
		KeyEvents:   cmp.KeyEvents,
		Summary:     cmp.Summary,
	}
	if detail == DetailSummary {
		resp.Traditional = summarizeRun(cmp.Traditional)
		resp.Cooperative = summarizeRun(cmp.Cooperative)
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleListScenarios returns the preset registry
// @Summary List simulation presets
// @Tags simulation
// @Produce json
// @Success 200 {array} scenario.Preset
// @Router /api/v1/scenarios [get]
func (h *SimulationHandler) HandleListScenarios(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.presets.List())
}

func (h *SimulationHandler) resolveConfig(req SimulateRequest) (scenario.Config, error) {
	cfg := h.defaults
	switch {
	case req.Preset != "" && req.Config != nil:
		return cfg, fmt.Errorf("%w: %s", domain.ErrInvalidConfiguration, ErrMsgPresetAndConfig)
	case req.Preset != "":
		p, ok := h.presets.Get(req.Preset)
		if !ok {
			return cfg, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, req.Preset)
		}
		cfg = p.Config
	case req.Config != nil:
		cfg = *req.Config
	}

	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if req.Weeks != nil {
		cfg.Weeks = *req.Weeks
	}
	if req.ParticipantCount != nil {
		cfg.ParticipantCount = *req.ParticipantCount
	}
	return cfg, nil
}

func summarizeRun(res *scenario.Result) RunSummary {
	s := RunSummary{
		RunID:      res.RunID,
		Scenario:   res.Scenario,
		State:      res.State,
		Weeks:      res.Weeks,
		DurationMS: res.DurationMS,
		Totals:     res.Totals,
	}
	if final, ok := res.Final(); ok {
		s.Final = &final
	}
	return s
}
