package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/scenario"
)

// MockSimulator mocks the Simulator interface
type MockSimulator struct {
	mock.Mock
}

func (m *MockSimulator) Compare(ctx context.Context, cfg scenario.Config) (*scenario.Comparison, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scenario.Comparison), args.Error(1)
}

func postJSON(t *testing.T, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	return httptest.NewRequest(http.MethodPost, target, &buf)
}

func smallConfig() scenario.Config {
	cfg := scenario.DefaultConfig()
	cfg.ParticipantCount = 20
	cfg.Weeks = 12
	return cfg
}

func fakeComparison(cfg scenario.Config) *scenario.Comparison {
	snap := domain.WeeklySnapshot{Week: cfg.Weeks, Gini: 0.3}
	return &scenario.Comparison{
		Traditional: &scenario.Result{RunID: "t", Scenario: domain.ScenarioTraditional, Weeks: cfg.Weeks, Snapshots: []domain.WeeklySnapshot{snap}},
		Cooperative: &scenario.Result{RunID: "c", Scenario: domain.ScenarioCooperative, Weeks: cfg.Weeks, Snapshots: []domain.WeeklySnapshot{snap}},
	}
}

func TestHandleSimulate(t *testing.T) {
	presets := scenario.NewDefaultRegistry()
	shock, ok := presets.Get(scenario.PresetIncomeShock)
	require.True(t, ok)

	seed := int64(7)
	weeks := 30
	withOverrides := shock.Config
	withOverrides.Seed = seed
	withOverrides.Weeks = weeks

	tests := []struct {
		name           string
		query          string
		reqBody        interface{}
		setupMocks     func(*MockSimulator)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Unknown Field",
			reqBody:        `{"participants": 10}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Invalid Override",
			reqBody:        `{"weeks": 0}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"weeks":"Must be greater than 0"`,
		},
		{
			name:           "Oversized Population",
			reqBody:        `{"participant_count": 1125899906842624}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"participantcount":"Must be at most 10000"`,
		},
		{
			name:           "Invalid Detail",
			query:          "?detail=everything",
			reqBody:        `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid detail query parameter: everything",
		},
		{
			name:           "Preset And Config",
			reqBody:        SimulateRequest{Preset: scenario.PresetBaseline, Config: ptr(smallConfig())},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgPresetAndConfig,
		},
		{
			name:           "Unknown Preset",
			reqBody:        SimulateRequest{Preset: "utopia"},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgPresetNotFoundError,
		},
		{
			name:    "Engine Rejects Config",
			reqBody: SimulateRequest{Config: ptr(smallConfig())},
			setupMocks: func(ms *MockSimulator) {
				ms.On("Compare", mock.Anything, smallConfig()).
					Return(nil, fmt.Errorf("%w: shock after horizon", domain.ErrInvalidConfiguration))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "shock after horizon",
		},
		{
			name:    "Preset With Overrides",
			reqBody: SimulateRequest{Preset: scenario.PresetIncomeShock, Seed: &seed, Weeks: &weeks},
			setupMocks: func(ms *MockSimulator) {
				ms.On("Compare", mock.Anything, withOverrides).Return(fakeComparison(withOverrides), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"snapshots":[`,
		},
		{
			name:    "Summary Detail",
			query:   "?detail=summary",
			reqBody: SimulateRequest{Config: ptr(smallConfig())},
			setupMocks: func(ms *MockSimulator) {
				ms.On("Compare", mock.Anything, smallConfig()).Return(fakeComparison(smallConfig()), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"final":{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// ARRANGE
			sim := &MockSimulator{}
			if tt.setupMocks != nil {
				tt.setupMocks(sim)
			}
			h := NewSimulationHandler(sim, presets, smallConfig())
			req := postJSON(t, "/api/v1/simulate"+tt.query, tt.reqBody)
			w := httptest.NewRecorder()

			// ACT
			h.HandleSimulate(w, req)

			// ASSERT
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			sim.AssertExpectations(t)
		})
	}
}

func TestHandleSimulate_SummaryOmitsSeries(t *testing.T) {
	sim := &MockSimulator{}
	sim.On("Compare", mock.Anything, smallConfig()).Return(fakeComparison(smallConfig()), nil)
	h := NewSimulationHandler(sim, scenario.NewDefaultRegistry(), smallConfig())

	w := httptest.NewRecorder()
	h.HandleSimulate(w, postJSON(t, "/api/v1/simulate?detail=summary", `{}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"snapshots"`)
}

func TestHandleSimulate_Engine(t *testing.T) {
	// ARRANGE
	h := NewSimulationHandler(scenario.NewEngine(), scenario.NewDefaultRegistry(), smallConfig())
	w := httptest.NewRecorder()

	// ACT
	h.HandleSimulate(w, postJSON(t, "/api/v1/simulate", `{"preset": "baseline", "weeks": 8, "participant_count": 15}`))

	// ASSERT
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Config      scenario.Config `json:"config"`
		Traditional scenario.Result `json:"traditional"`
		Cooperative scenario.Result `json:"cooperative"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 8, resp.Config.Weeks)
	assert.Len(t, resp.Traditional.Snapshots, 8)
	assert.Len(t, resp.Cooperative.Snapshots, 8)
	assert.Equal(t, scenario.StateCompleted, resp.Cooperative.State)
}

func TestHandleListScenarios(t *testing.T) {
	h := NewSimulationHandler(&MockSimulator{}, scenario.NewDefaultRegistry(), smallConfig())
	w := httptest.NewRecorder()

	h.HandleListScenarios(w, httptest.NewRequest(http.MethodGet, "/api/v1/scenarios", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var presets []scenario.Preset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &presets))
	require.Len(t, presets, 4)
	assert.Equal(t, scenario.PresetBaseline, presets[0].Name)
}

func ptr[T any](v T) *T {
	return &v
}
