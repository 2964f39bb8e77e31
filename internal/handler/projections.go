package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/logger"
	"github.com/osse101/CoopTokenSim_Go/internal/projection"
	"github.com/osse101/CoopTokenSim_Go/internal/validation"
)

// ProjectionValidator scores projections against simulated runs
type ProjectionValidator interface {
	Validate(ctx context.Context, ps domain.ProjectionScenario) (*domain.ValidationReport, error)
	CompareScenarios(ctx context.Context, scenarios []domain.ProjectionScenario) (*projection.Comparison, error)
	Options() projection.Options
}

// ScenarioCatalog serves the projection scenarios loaded at startup
type ScenarioCatalog interface {
	Get(name string) (domain.ProjectionScenario, error)
	List() []domain.ProjectionScenario
}

// CacheHeader reports whether a validation report came from the cache
const (
	CacheHeader      = "X-Report-Cache"
	CacheHeaderHit   = "hit"
	CacheHeaderMiss  = "miss"
	CacheHeaderNoUse = "none"
)

type ProjectionHandler struct {
	validator ProjectionValidator
	catalog   ScenarioCatalog
	cache     *projection.ReportCache
	schemas   validation.SchemaValidator
}

func NewProjectionHandler(validator ProjectionValidator, catalog ScenarioCatalog, cache *projection.ReportCache, schemas validation.SchemaValidator) *ProjectionHandler {
	return &ProjectionHandler{
		validator: validator,
		catalog:   catalog,
		cache:     cache,
		schemas:   schemas,
	}
}

// ValidateProjectionRequest names a loaded scenario or carries one inline
type ValidateProjectionRequest struct {
	Name     string          `json:"name,omitempty"`
	Scenario json.RawMessage `json:"scenario,omitempty"`
}

// CompareProjectionsRequest lists the scenarios to rank; empty means every loaded scenario
type CompareProjectionsRequest struct {
	Names []string `json:"names,omitempty" validate:"omitempty,dive,required"`
}

// HandleListProjections returns the loaded projection scenarios
// @Summary List projection scenarios
// @Tags projections
// @Produce json
// @Success 200 {array} domain.ProjectionScenario
// @Router /api/v1/projections [get]
func (h *ProjectionHandler) HandleListProjections(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.List())
}

// HandleValidateProjection runs one projection over the validation horizon.
// Reports for loaded scenarios are cached; inline scenarios always run.
// @Summary Validate a projection
// @Tags projections
// @Accept json
// @Produce json
// @Param cache query string false "bypass to force a fresh run"
// @Success 200 {object} domain.ValidationReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/projections/validate [post]
func (h *ProjectionHandler) HandleValidateProjection(w http.ResponseWriter, r *http.Request) {
	var req ValidateProjectionRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpValidateProjection); err != nil {
		return
	}

	ps, cacheable, err := h.resolveScenario(req)
	if err != nil {
		respondServiceError(w, r, OpValidateProjection, err)
		return
	}

	opts := h.validator.Options()
	bypass := GetOptionalQueryParam(r, QueryCache, "") == CacheBypass
	cacheState := CacheHeaderNoUse
	if cacheable && !bypass {
		if report, ok := h.cache.Get(ps.Name, opts.Seed, opts.HorizonWeeks); ok {
			w.Header().Set(CacheHeader, CacheHeaderHit)
			respondJSON(w, http.StatusOK, report)
			return
		}
		cacheState = CacheHeaderMiss
	}

	report, err := h.validator.Validate(r.Context(), ps)
	if err != nil {
		respondServiceError(w, r, OpValidateProjection, err)
		return
	}
	if cacheable {
		h.cache.Set(opts.HorizonWeeks, report)
	}

	w.Header().Set(CacheHeader, cacheState)
	respondJSON(w, http.StatusOK, report)
}

// HandleCompareProjections validates several projections in sequence and ranks them
// @Summary Compare projections
// @Tags projections
// @Accept json
// @Produce json
// @Success 200 {object} projection.Comparison
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/projections/compare [post]
func (h *ProjectionHandler) HandleCompareProjections(w http.ResponseWriter, r *http.Request) {
	var req CompareProjectionsRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCompareProjections); err != nil {
		return
	}

	scenarios := h.catalog.List()
	if len(req.Names) > 0 {
		scenarios = make([]domain.ProjectionScenario, 0, len(req.Names))
		for _, name := range req.Names {
			ps, err := h.catalog.Get(name)
			if err != nil {
				respondServiceError(w, r, OpCompareProjections, err)
				return
			}
			scenarios = append(scenarios, ps)
		}
	}
	if len(scenarios) == 0 {
		respondError(w, http.StatusBadRequest, ErrMsgNoScenarios)
		return
	}

	cmp, err := h.validator.CompareScenarios(r.Context(), scenarios)
	if err != nil {
		respondServiceError(w, r, OpCompareProjections, err)
		return
	}

	// Each report equals a standalone validation, so the comparison warms the cache
	horizon := h.validator.Options().HorizonWeeks
	for _, report := range cmp.Reports {
		h.cache.Set(horizon, report)
	}

	logger.FromContext(r.Context()).Info("Projections compared", "count", len(cmp.Reports))
	respondJSON(w, http.StatusOK, cmp)
}

// resolveScenario returns the requested scenario and whether its report may be cached
func (h *ProjectionHandler) resolveScenario(req ValidateProjectionRequest) (domain.ProjectionScenario, bool, error) {
	var ps domain.ProjectionScenario
	hasInline := len(req.Scenario) > 0 && string(req.Scenario) != "null"

	switch {
	case req.Name != "" && hasInline:
		return ps, false, fmt.Errorf("%w: %s", domain.ErrInvalidConfiguration, ErrMsgNameAndScenario)
	case req.Name != "":
		ps, err := h.catalog.Get(req.Name)
		return ps, err == nil, err
	case hasInline:
		if err := projection.DecodeScenario(req.Scenario, h.schemas, &ps); err != nil {
			return ps, false, err
		}
		return ps, false, nil
	}
	return ps, false, fmt.Errorf("%w: %s", domain.ErrInvalidConfiguration, ErrMsgNameOrScenario)
}
