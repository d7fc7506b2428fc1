package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gridhaven/server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
name = "TestHaven"

[network]
tick_rate = "100ms"

[simulation]
scan_interval = 40
transport_grace_ticks = 10

[economy]
demolition_cost_ratio = 0.5
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "TestHaven", cfg.Server.Name)
	assert.Equal(t, 100*time.Millisecond, cfg.Network.TickRate)
	assert.EqualValues(t, 40, cfg.Simulation.ScanInterval)
	assert.EqualValues(t, 10, cfg.Simulation.TransportGraceTicks)
	assert.Equal(t, 0.5, cfg.Economy.DemolitionCostRatio)

	// Untouched keys keep their defaults.
	def := config.Defaults()
	assert.Equal(t, def.Simulation.StaggerOffset, cfg.Simulation.StaggerOffset)
	assert.Equal(t, def.Economy.StartingCredits, cfg.Economy.StartingCredits)
	assert.Equal(t, def.Network.BindAddress, cfg.Network.BindAddress)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_StampsStartTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nid = 3\n"), 0o644))

	before := time.Now().Unix()
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cfg.Server.StartTime, before)
	assert.Equal(t, 3, cfg.Server.ID)
}
