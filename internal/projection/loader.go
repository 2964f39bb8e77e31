package projection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/logger"
	"github.com/osse101/CoopTokenSim_Go/internal/validation"
)

// LoadScenarios reads every projection scenario file in dir, sorted by file
// name. Each file must satisfy the projection schema and the struct rules.
func LoadScenarios(ctx context.Context, dir string, schemas validation.SchemaValidator) ([]domain.ProjectionScenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, ScenarioFilePattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios in %s: %w", dir, err)
	}
	sort.Strings(paths)

	scenarios := make([]domain.ProjectionScenario, 0, len(paths))
	for _, path := range paths {
		ps, err := LoadScenario(path, schemas)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, ps)
	}

	logger.FromContext(ctx).Info(LogMsgScenariosLoaded, "dir", dir, "count", len(scenarios))
	return scenarios, nil
}

// LoadScenario reads and validates one projection scenario file
func LoadScenario(path string, schemas validation.SchemaValidator) (domain.ProjectionScenario, error) {
	var ps domain.ProjectionScenario

	data, err := os.ReadFile(path)
	if err != nil {
		return ps, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	if err := DecodeScenario(data, schemas, &ps); err != nil {
		return ps, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ps, nil
}

// DecodeScenario validates data against the projection schema and decodes it into ps
func DecodeScenario(data []byte, schemas validation.SchemaValidator, ps *domain.ProjectionScenario) error {
	if err := schemas.ValidateBytes(data, SchemaPath); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(ps); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	return validation.Struct(*ps)
}
