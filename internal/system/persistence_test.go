package system_test

import (
	"testing"

	"github.com/gridhaven/server/internal/persist"
	"github.com/gridhaven/server/internal/system"
	"github.com/gridhaven/server/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abandonedRow(id int64, timer int64) persist.BuildingRow {
	return persist.BuildingRow{
		ID:               id,
		OverseerID:       1,
		X:                4,
		Y:                4,
		Width:            1,
		Height:           1,
		TemplateID:       101,
		Category:         int16(world.ZoneHabitation),
		Density:          int16(world.DensityLow),
		State:            int16(world.StateAbandoned),
		Level:            1,
		MaxLevel:         5,
		Capacity:         20,
		Health:           200,
		ConstructionCost: 500,
		StateChangedTick: 10,
		AbandonTimer:     &timer,
	}
}

func TestRestoreRows_KeepsAbandonCountdown(t *testing.T) {
	e := newEnv()
	e.cfg.AbandonTimerTicks = 200

	row := abandonedRow(7, 200)
	require.Equal(t, 1, system.RestoreRows(e.state, []persist.BuildingRow{row}, e.log))

	b, ok := e.state.Get(7)
	require.True(t, ok)
	require.Equal(t, world.StateAbandoned, b.State)

	// Still unserviced after the restart: the countdown resumes where the
	// snapshot left it rather than collapsing to Derelict.
	o := &outage{energy: true}
	sys := newLifecycle(e, o)
	e.clock.Set(11)
	sys.Update(dt)

	assert.Equal(t, world.StateAbandoned, b.State)
	assert.EqualValues(t, 199, e.state.GraceFor(b.ID).AbandonTimer)
}

func TestRestoreRows_NearlyExpiredCountdownStillCounts(t *testing.T) {
	e := newEnv()

	row := abandonedRow(3, 1)
	require.Equal(t, 1, system.RestoreRows(e.state, []persist.BuildingRow{row}, e.log))

	b, _ := e.state.Get(3)
	o := &outage{energy: true}
	sys := newLifecycle(e, o)
	e.clock.Set(11)
	sys.Update(dt)

	assert.Equal(t, world.StateDerelict, b.State)
}

func TestPersist_ZeroSaveIntervalIsNoop(t *testing.T) {
	e := newEnv()
	e.cfg.SaveIntervalTicks = 0

	sys := system.NewPersistSystem(e.state, e.clock, e.treasury,
		persist.NewBuildingRepo(nil), nil, nil, e.cfg, e.log)

	e.clock.Set(100)
	assert.NotPanics(t, func() { sys.Update(dt) })
}
