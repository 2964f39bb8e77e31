package projection

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/logger"
	"github.com/osse101/CoopTokenSim_Go/internal/validation"
)

// Catalog holds the projection scenarios loaded from a directory, in file order
type Catalog struct {
	dir     string
	schemas validation.SchemaValidator

	mu        sync.RWMutex
	scenarios []domain.ProjectionScenario
	byName    map[string]int
	revision  uint64
}

// NewCatalog creates an empty catalog reading from dir
func NewCatalog(dir string, schemas validation.SchemaValidator) *Catalog {
	return &Catalog{
		dir:     dir,
		schemas: schemas,
		byName:  make(map[string]int),
	}
}

// Reload replaces the catalog with the scenarios currently in its directory.
// Nothing changes if any file fails to load or two files share a name.
func (c *Catalog) Reload(ctx context.Context) error {
	scenarios, err := LoadScenarios(ctx, c.dir, c.schemas)
	if err != nil {
		return err
	}

	byName := make(map[string]int, len(scenarios))
	for i, ps := range scenarios {
		if _, dup := byName[ps.Name]; dup {
			return fmt.Errorf("%w: duplicate scenario name %q in %s", domain.ErrInvalidConfiguration, ps.Name, c.dir)
		}
		byName[ps.Name] = i
	}

	c.mu.Lock()
	changed := (len(c.scenarios) > 0 || len(scenarios) > 0) && !reflect.DeepEqual(c.scenarios, scenarios)
	if changed {
		c.revision++
	}
	c.scenarios = scenarios
	c.byName = byName
	c.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgCatalogReloaded, "dir", c.dir, "count", len(scenarios), "changed", changed)
	return nil
}

// Revision increases every time a reload changes the loaded scenarios
func (c *Catalog) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Get returns the scenario called name
func (c *Catalog) Get(name string) (domain.ProjectionScenario, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byName[name]
	if !ok {
		return domain.ProjectionScenario{}, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, name)
	}
	return c.scenarios[i], nil
}

// List returns a copy of every loaded scenario
func (c *Catalog) List() []domain.ProjectionScenario {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.ProjectionScenario, len(c.scenarios))
	copy(out, c.scenarios)
	return out
}

// Len returns the number of loaded scenarios
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scenarios)
}

// CheckHealth fails until at least one scenario is loaded
func (c *Catalog) CheckHealth(ctx context.Context) error {
	if c.Len() == 0 {
		return fmt.Errorf("no projection scenarios loaded from %s", c.dir)
	}
	return ctx.Err()
}
