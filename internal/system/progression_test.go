package system_test

import (
	"testing"

	"github.com/gridhaven/server/internal/system"
	"github.com/gridhaven/server/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgression(e *env) *system.ProgressionSystem {
	return system.NewProgressionSystem(e.state, e.clock, e.bus, nil, e.cfg, e.log)
}

func TestProgression_UpgradeOnCheckTick(t *testing.T) {
	e := newEnv()
	e.cfg.CheckInterval = 10
	e.cfg.UpgradeCooldown = 5
	sys := newProgression(e)
	upgraded := collect[world.EvUpgraded](e.bus)

	b := e.activeBuilding(4, 4, 0)
	e.zones.SetDemand(1, world.ZoneHabitation, 5)
	e.zones.SetLandValue(4, 4, 1, 1, 100) // level 2 needs 2×50

	// Tick 7 is not a check tick: nothing happens despite cooldown expiry.
	e.clock.Set(7)
	sys.Update(dt)
	assert.EqualValues(t, 1, b.Level)

	e.clock.Set(10)
	sys.Update(dt)
	assert.EqualValues(t, 2, b.Level)
	assert.EqualValues(t, 30, b.Capacity) // 20 × 1.5
	assert.EqualValues(t, 10, b.StateChangedTick)

	e.deliver()
	require.Len(t, *upgraded, 1)
	assert.EqualValues(t, 2, (*upgraded)[0].Level)
}

func TestProgression_UpgradeRequiresDesirability(t *testing.T) {
	e := newEnv()
	e.cfg.CheckInterval = 10
	e.cfg.UpgradeCooldown = 5
	sys := newProgression(e)

	b := e.activeBuilding(4, 4, 0)
	e.zones.SetDemand(1, world.ZoneHabitation, 5)
	e.zones.SetLandValue(4, 4, 1, 1, 99) // below the 100 needed for level 2

	e.clock.Set(10)
	sys.Update(dt)
	assert.EqualValues(t, 1, b.Level)
}

func TestProgression_UpgradeRespectsCooldown(t *testing.T) {
	e := newEnv()
	e.cfg.CheckInterval = 10
	e.cfg.UpgradeCooldown = 15
	sys := newProgression(e)

	b := e.activeBuilding(4, 4, 0)
	e.zones.SetDemand(1, world.ZoneHabitation, 5)
	e.zones.SetLandValue(4, 4, 1, 1, 500)

	// Tick 10: only 10 ticks since the last transition, cooldown is 15.
	e.clock.Set(10)
	sys.Update(dt)
	assert.EqualValues(t, 1, b.Level)

	e.clock.Set(20)
	sys.Update(dt)
	assert.EqualValues(t, 2, b.Level)

	// The upgrade reset the cooldown anchor: tick 30 is too soon again.
	e.clock.Set(30)
	sys.Update(dt)
	assert.EqualValues(t, 2, b.Level)
}

func TestProgression_UpgradeCapsAtTemplateMax(t *testing.T) {
	e := newEnv()
	e.cfg.CheckInterval = 1
	e.cfg.UpgradeCooldown = 0
	sys := newProgression(e)

	b := e.activeBuilding(4, 4, 0)
	b.MaxLevel = 2
	e.zones.SetDemand(1, world.ZoneHabitation, 5)
	e.zones.SetLandValue(4, 4, 1, 1, 1000)

	for tick := int64(1); tick <= 10; tick++ {
		e.clock.Set(tick)
		sys.Update(dt)
	}
	assert.EqualValues(t, 2, b.Level)
}

func TestProgression_DowngradeOnLowLandValue(t *testing.T) {
	e := newEnv()
	e.cfg.CheckInterval = 10
	e.cfg.UpgradeCooldown = 0
	sys := newProgression(e)
	downgraded := collect[world.EvDowngraded](e.bus)

	b := e.activeBuilding(4, 4, 0)
	b.Level = 3
	b.Capacity = 40 // base 20 × 2.0
	e.zones.SetDemand(1, world.ZoneHabitation, 0)
	e.zones.SetLandValue(4, 4, 1, 1, 100) // floor for level 3 is 150

	e.clock.Set(10)
	sys.Update(dt)
	assert.EqualValues(t, 2, b.Level)
	assert.EqualValues(t, 30, b.Capacity)

	e.deliver()
	require.Len(t, *downgraded, 1)
}

func TestProgression_DowngradeOnSustainedNegativeDemand(t *testing.T) {
	e := newEnv()
	e.cfg.CheckInterval = 10
	e.cfg.UpgradeCooldown = 0
	e.cfg.DowngradeDelay = 5
	sys := newProgression(e)

	b := e.activeBuilding(4, 4, 0)
	b.Level = 2
	b.Capacity = 30
	e.zones.SetLandValue(4, 4, 1, 1, 1000) // land value is fine
	e.zones.SetDemand(1, world.ZoneHabitation, -3)

	// Stress builds every tick; the first check tick with stress ≥ 5
	// downgrades.
	for tick := int64(1); tick <= 9; tick++ {
		e.clock.Set(tick)
		sys.Update(dt)
	}
	assert.EqualValues(t, 2, b.Level)

	e.clock.Set(10)
	sys.Update(dt)
	assert.EqualValues(t, 1, b.Level)
}

func TestProgression_DemandStressResetsOnRecovery(t *testing.T) {
	e := newEnv()
	e.cfg.CheckInterval = 10
	e.cfg.DowngradeDelay = 5
	sys := newProgression(e)

	b := e.activeBuilding(4, 4, 0)
	b.Level = 2
	e.zones.SetLandValue(4, 4, 1, 1, 1000)
	e.zones.SetDemand(1, world.ZoneHabitation, -3)

	for tick := int64(1); tick <= 4; tick++ {
		e.clock.Set(tick)
		sys.Update(dt)
	}
	// Demand recovers for a single tick: the streak restarts.
	e.zones.SetDemand(1, world.ZoneHabitation, 2)
	e.clock.Set(5)
	sys.Update(dt)
	assert.EqualValues(t, 0, e.state.GraceFor(b.ID).DemandStress)

	e.zones.SetDemand(1, world.ZoneHabitation, -3)
	for tick := int64(6); tick <= 10; tick++ {
		e.clock.Set(tick)
		sys.Update(dt)
	}
	assert.EqualValues(t, 2, b.Level)
}

func TestProgression_NeverBelowMinLevel(t *testing.T) {
	e := newEnv()
	e.cfg.CheckInterval = 1
	sys := newProgression(e)

	b := e.activeBuilding(4, 4, 0)
	e.zones.SetLandValue(4, 4, 1, 1, 0)
	e.zones.SetDemand(1, world.ZoneHabitation, -10)

	for tick := int64(1); tick <= 20; tick++ {
		e.clock.Set(tick)
		sys.Update(dt)
	}
	assert.EqualValues(t, world.MinLevel, b.Level)
}
