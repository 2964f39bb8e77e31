package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	presets := r.List()
	require.Len(t, presets, 4)
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
		assert.NoError(t, p.Config.Validate(), p.Name)
	}
	assert.Equal(t, []string{PresetBaseline, PresetHighSavings, PresetIncomeShock, PresetLowParticipation}, names)

	shock, ok := r.Get(PresetIncomeShock)
	require.True(t, ok)
	require.NotNil(t, shock.Config.Shock)
	assert.Equal(t, 26, shock.Config.Shock.Week)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	t.Run("Missing name", func(t *testing.T) {
		err := r.Register(Preset{Config: DefaultConfig()})
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("Invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weeks = -1
		err := r.Register(Preset{Name: "broken", Config: cfg})
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		_, ok := r.Get("broken")
		assert.False(t, ok)
	})

	t.Run("Replace", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, r.Register(Preset{Name: "custom", Config: cfg}))
		cfg.Weeks = 10
		require.NoError(t, r.Register(Preset{Name: "custom", Config: cfg}))

		got, ok := r.Get("custom")
		require.True(t, ok)
		assert.Equal(t, 10, got.Config.Weeks)
		assert.Len(t, r.List(), 1)
	})
}
