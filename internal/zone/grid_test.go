package zone_test

import (
	"testing"

	"github.com/gridhaven/server/internal/world"
	"github.com/gridhaven/server/internal/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_DesignateAndQuery(t *testing.T) {
	g := zone.NewGrid(16, 16)
	g.Designate(2, 2, 3, 2, world.ZoneExchange, world.DensityHigh, 4)

	tile, ok := g.ZoneAt(3, 3)
	require.True(t, ok)
	assert.Equal(t, world.ZoneExchange, tile.Category)
	assert.Equal(t, world.DensityHigh, tile.Density)
	assert.Equal(t, world.ZoneDesignated, tile.State)
	assert.EqualValues(t, 4, tile.Owner)

	_, ok = g.ZoneAt(10, 10)
	assert.False(t, ok)
	_, ok = g.ZoneAt(-1, 0)
	assert.False(t, ok)
}

func TestGrid_OccupyVacateRoundTrip(t *testing.T) {
	g := zone.NewGrid(16, 16)
	g.Designate(0, 0, 2, 2, world.ZoneHabitation, world.DensityLow, 1)

	g.MarkOccupied(0, 0, 2, 2)
	tile, _ := g.ZoneAt(1, 1)
	assert.Equal(t, world.ZoneOccupied, tile.State)

	g.MarkVacated(0, 0, 2, 2)
	tile, _ = g.ZoneAt(1, 1)
	assert.Equal(t, world.ZoneDesignated, tile.State)
}

func TestGrid_DemandPerOwnerAndCategory(t *testing.T) {
	g := zone.NewGrid(16, 16)

	g.SetDemand(1, world.ZoneHabitation, 12)
	g.SetDemand(1, world.ZoneExchange, -4)
	g.SetDemand(2, world.ZoneHabitation, 7)

	assert.EqualValues(t, 12, g.Demand(1, world.ZoneHabitation))
	assert.EqualValues(t, -4, g.Demand(1, world.ZoneExchange))
	assert.EqualValues(t, 7, g.Demand(2, world.ZoneHabitation))
	assert.EqualValues(t, 0, g.Demand(3, world.ZoneFabrication))
}

func TestGrid_Desirability(t *testing.T) {
	g := zone.NewGrid(16, 16)

	assert.EqualValues(t, 0, g.Desirability(5, 5))
	g.SetLandValue(4, 4, 2, 2, 120)
	assert.EqualValues(t, 120, g.Desirability(5, 5))
	assert.EqualValues(t, 0, g.Desirability(6, 6))
	assert.EqualValues(t, 0, g.Desirability(-3, 0))
}

func TestGrid_OwnersSorted(t *testing.T) {
	g := zone.NewGrid(16, 16)
	g.Designate(0, 0, 1, 1, world.ZoneHabitation, world.DensityLow, 9)
	g.Designate(2, 0, 1, 1, world.ZoneHabitation, world.DensityLow, 2)
	g.Designate(4, 0, 1, 1, world.ZoneHabitation, world.DensityLow, 5)

	assert.Equal(t, []world.OwnerID{2, 5, 9}, g.Owners())
}

func TestGrid_RedesignateTransfersOwnerCount(t *testing.T) {
	g := zone.NewGrid(16, 16)
	g.Designate(3, 3, 1, 1, world.ZoneHabitation, world.DensityLow, 1)

	// Repeating the designation must not inflate the owner's cell count.
	g.Designate(3, 3, 1, 1, world.ZoneHabitation, world.DensityLow, 1)
	assert.Equal(t, []world.OwnerID{1}, g.Owners())

	// Handing the tile to another overseer releases the old claim.
	g.Designate(3, 3, 1, 1, world.ZoneExchange, world.DensityHigh, 2)
	assert.Equal(t, []world.OwnerID{2}, g.Owners())

	tile, ok := g.ZoneAt(3, 3)
	require.True(t, ok)
	assert.EqualValues(t, 2, tile.Owner)
	assert.Equal(t, world.ZoneExchange, tile.Category)
}
