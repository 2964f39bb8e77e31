package scenario

import (
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

// Preset is a named, described run configuration
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Config      Config `json:"config"`
}

// Registry holds named presets
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewRegistry creates an empty preset registry
func NewRegistry() *Registry {
	return &Registry{
		presets: make(map[string]Preset),
	}
}

// NewDefaultRegistry creates a registry with the built-in presets
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range builtinPresets() {
		// Built-in presets are valid by construction
		_ = r.Register(p)
	}
	return r
}

// Register validates and adds a preset, replacing any preset with the same name
func (r *Registry) Register(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("%w: preset name is required", domain.ErrInvalidConfiguration)
	}
	if err := p.Config.Validate(); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[p.Name] = p
	return nil
}

// Get retrieves a preset by name
func (r *Registry) Get(name string) (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[name]
	return p, ok
}

// List returns all presets sorted by name
func (r *Registry) List() []Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	presets := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		presets = append(presets, p)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets
}

func builtinPresets() []Preset {
	baseline := DefaultConfig()

	highSavings := DefaultConfig()
	highSavings.GroupBuyingSavingsRate = 0.25
	highSavings.LocalProductionSavingsRate = 0.35

	lowParticipation := DefaultConfig()
	lowParticipation.Contracts.Reward.ParticipationRate = 0.4
	lowParticipation.Contracts.GroupPurchase.JoinProbability = 0.1

	shock := DefaultConfig()
	shock.Shock = &Shock{Week: 26, Duration: 4, IncomeMultiplier: 0.8}

	return []Preset{
		{Name: PresetBaseline, Description: "Default cooperative parameters", Config: baseline},
		{Name: PresetHighSavings, Description: "Stronger group buying and local production discounts", Config: highSavings},
		{Name: PresetLowParticipation, Description: "Fewer members earn rewards or join group purchases", Config: lowParticipation},
		{Name: PresetIncomeShock, Description: "Income falls 20% for four weeks in the middle of year one", Config: shock},
	}
}
