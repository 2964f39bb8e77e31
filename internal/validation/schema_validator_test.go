package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

const projectionSchemaPath = "configs/schemas/projection_scenario.schema.json"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator()
	tmpDir := t.TempDir()
	schemaPath := writeFile(t, tmpDir, "test.schema.json", `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"weeks": {"type": "integer", "minimum": 1}
		},
		"required": ["name"]
	}`)

	tests := []struct {
		name     string
		data     string
		wantErr  bool
		errorMsg string
	}{
		{name: "valid data", data: `{"name": "baseline", "weeks": 52}`},
		{name: "optional field omitted", data: `{"name": "baseline"}`},
		{name: "missing required field", data: `{"weeks": 52}`, wantErr: true, errorMsg: "required"},
		{name: "wrong type", data: `{"name": "baseline", "weeks": "many"}`, wantErr: true, errorMsg: "/weeks"},
		{name: "below minimum", data: `{"name": "baseline", "weeks": 0}`, wantErr: true, errorMsg: "minimum"},
		{name: "invalid JSON", data: `{"name": }`, wantErr: true, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataPath := writeFile(t, tmpDir, "data.json", tt.data)

			err := v.ValidateFile(dataPath, schemaPath)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_MissingFiles(t *testing.T) {
	v := NewSchemaValidator()
	tmpDir := t.TempDir()
	schemaPath := writeFile(t, tmpDir, "object.schema.json", `{"type": "object"}`)
	dataPath := writeFile(t, tmpDir, "data.json", `{}`)

	err := v.ValidateFile(dataPath, "nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")

	err = v.ValidateFile(filepath.Join(tmpDir, "missing.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*schemaValidator)
	schemaPath := writeFile(t, t.TempDir(), "object.schema.json", `{"type": "object"}`)

	require.NoError(t, v.ValidateBytes([]byte(`{"a": 1}`), schemaPath))
	require.NoError(t, v.ValidateBytes([]byte(`{"b": 2}`), schemaPath))

	assert.Len(t, v.schemas, 1)
}

func TestSchemaValidator_ProjectionSchema(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid scenario",
			data: `{"name": "seed_round", "investment": 5000, "population_size": 100,
				"participation_rate": 0.75, "projected_year_n_revenue": 9000,
				"projected_roi": 13.66, "projected_break_even_weeks": 14.3,
				"market_weights": {"bull": 0.25, "normal": 0.5, "bear": 0.2, "crypto_winter": 0.05}}`,
		},
		{
			name: "zero investment",
			data: `{"name": "x", "investment": 0, "population_size": 100, "participation_rate": 0.5,
				"projected_year_n_revenue": 1, "projected_roi": 1, "projected_break_even_weeks": 1}`,
			wantErr: true,
		},
		{
			name: "unknown market",
			data: `{"name": "x", "investment": 10, "population_size": 100, "participation_rate": 0.5,
				"projected_year_n_revenue": 1, "projected_roi": 1, "projected_break_even_weeks": 1,
				"market_weights": {"sideways": 1}}`,
			wantErr: true,
		},
		{
			name: "fractional population",
			data: `{"name": "x", "investment": 10, "population_size": 10.5, "participation_rate": 0.5,
				"projected_year_n_revenue": 1, "projected_roi": 1, "projected_break_even_weeks": 1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), projectionSchemaPath)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
