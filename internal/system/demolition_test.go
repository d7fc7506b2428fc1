package system_test

import (
	"testing"

	"github.com/gridhaven/server/internal/system"
	"github.com/gridhaven/server/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemolition(e *env) *system.DemolitionSystem {
	return system.NewDemolitionSystem(e.state, e.clock, e.bus,
		e.treasury, nil, e.cfg, e.eco, e.log)
}

func TestDemolition_ActiveBuildingFullRate(t *testing.T) {
	e := newEnv()
	e.treasury.SetBalance(1, 1000)
	sys := newDemolition(e)
	deconstructed := collect[world.EvDeconstructed](e.bus)

	b := e.activeBuilding(4, 4, 0) // construction cost 500
	e.clock.Set(20)

	res := sys.Demolish(b.ID, 1)
	require.True(t, res.OK)
	assert.EqualValues(t, 125, res.Cost) // 500 × 0.25 × 1.0
	assert.EqualValues(t, 875, e.treasury.Balance(1))

	assert.Equal(t, world.StateDeconstructed, b.State)
	assert.EqualValues(t, 0, e.state.Grid.OccupantAt(4, 4))
	assert.True(t, e.state.DebrisFields.Has(b.ID))

	e.deliver()
	require.Len(t, *deconstructed, 1)
	assert.True(t, (*deconstructed)[0].PlayerInitiated)
	assert.EqualValues(t, 125, (*deconstructed)[0].CostPaid)
}

func TestDemolition_InsufficientCreditsChangesNothing(t *testing.T) {
	e := newEnv()
	e.treasury.SetBalance(1, 100)
	sys := newDemolition(e)

	b := e.activeBuilding(4, 4, 0)

	res := sys.Demolish(b.ID, 1)
	require.False(t, res.OK)
	assert.Equal(t, world.ReasonInsufficientCredits, res.Reason)

	// Nothing moved: state, balance and footprint all intact.
	assert.Equal(t, world.StateActive, b.State)
	assert.EqualValues(t, 100, e.treasury.Balance(1))
	assert.Equal(t, b.ID, e.state.Grid.OccupantAt(4, 4))
}

func TestDemolition_StateModifiers(t *testing.T) {
	e := newEnv()
	e.treasury.SetBalance(1, 10000)
	sys := newDemolition(e)

	cases := []struct {
		state world.LifecycleState
		cost  int64
	}{
		{world.StateMaterializing, 62}, // 500 × 0.25 × 0.5, truncated
		{world.StateAbandoned, 12},     // 500 × 0.25 × 0.1
		{world.StateDerelict, 0},
	}
	for i, tc := range cases {
		b := e.activeBuilding(int32(i*2), 0, 0)
		b.State = tc.state
		res := sys.Demolish(b.ID, 1)
		require.True(t, res.OK, "state %s", tc.state)
		assert.EqualValues(t, tc.cost, res.Cost, "state %s", tc.state)
	}
}

func TestDemolition_OwnershipAndExistence(t *testing.T) {
	e := newEnv()
	sys := newDemolition(e)

	b := e.activeBuilding(4, 4, 0) // owner 1

	res := sys.Demolish(b.ID, 2)
	assert.Equal(t, world.ReasonNotOwned, res.Reason)
	assert.Equal(t, world.StateActive, b.State)

	res = sys.Demolish(999, 1)
	assert.Equal(t, world.ReasonNotFound, res.Reason)

	// Double demolition: the second attempt reports the terminal state.
	require.True(t, sys.Demolish(b.ID, 1).OK)
	res = sys.Demolish(b.ID, 1)
	assert.Equal(t, world.ReasonAlreadyDeconstructed, res.Reason)
}

func TestDemolition_SystemPathSkipsOwnershipAndCost(t *testing.T) {
	e := newEnv()
	e.treasury.SetBalance(1, 0)
	sys := newDemolition(e)
	deconstructed := collect[world.EvDeconstructed](e.bus)

	b := e.activeBuilding(4, 4, 0)

	res := sys.DemolitionRequest(4, 4)
	require.True(t, res.OK)
	assert.EqualValues(t, 0, res.Cost)
	assert.Equal(t, world.StateDeconstructed, b.State)
	assert.EqualValues(t, 0, e.treasury.Balance(1))

	e.deliver()
	require.Len(t, *deconstructed, 1)
	assert.False(t, (*deconstructed)[0].PlayerInitiated)
}

func TestDemolition_QueueDrainsOncePerTick(t *testing.T) {
	e := newEnv()
	e.treasury.SetBalance(1, 1000)
	sys := newDemolition(e)

	a := e.activeBuilding(2, 2, 0)
	b := e.activeBuilding(6, 6, 0)

	sys.Enqueue(system.DemolitionRequest{PlayerInitiated: true, ID: a.ID, Owner: 1})
	sys.Enqueue(system.DemolitionRequest{PlayerInitiated: true, ID: b.ID, Owner: 1})
	sys.Update(dt)

	assert.Equal(t, world.StateDeconstructed, a.State)
	assert.Equal(t, world.StateDeconstructed, b.State)
	assert.EqualValues(t, 750, e.treasury.Balance(1))

	// Queue is empty afterwards: another pass changes nothing.
	sys.Update(dt)
	assert.EqualValues(t, 750, e.treasury.Balance(1))
}
