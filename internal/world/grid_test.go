package world_test

import (
	"testing"

	"github.com/gridhaven/server/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFootprintGrid_PlaceAndQuery(t *testing.T) {
	g := world.NewFootprintGrid(8, 8)

	require.True(t, g.CanPlace(2, 3, 2, 2))
	require.True(t, g.PlaceFootprint(2, 3, 2, 2, 7))

	assert.EqualValues(t, 7, g.OccupantAt(2, 3))
	assert.EqualValues(t, 7, g.OccupantAt(3, 4))
	assert.EqualValues(t, 0, g.OccupantAt(1, 3))
	assert.EqualValues(t, 0, g.OccupantAt(4, 3))
}

func TestFootprintGrid_PlaceIsAtomic(t *testing.T) {
	g := world.NewFootprintGrid(8, 8)
	require.True(t, g.PlaceFootprint(3, 3, 1, 1, 1))

	// 2×2 at (2,2) overlaps the occupied cell at (3,3); no cell of the
	// failed placement may be claimed.
	require.False(t, g.PlaceFootprint(2, 2, 2, 2, 2))
	assert.EqualValues(t, 0, g.OccupantAt(2, 2))
	assert.EqualValues(t, 0, g.OccupantAt(3, 2))
	assert.EqualValues(t, 0, g.OccupantAt(2, 3))
	assert.EqualValues(t, 1, g.OccupantAt(3, 3))
}

func TestFootprintGrid_OutOfBounds(t *testing.T) {
	g := world.NewFootprintGrid(4, 4)

	// Queries beyond the edge return empty, never panic.
	assert.EqualValues(t, 0, g.OccupantAt(-1, 0))
	assert.EqualValues(t, 0, g.OccupantAt(0, -1))
	assert.EqualValues(t, 0, g.OccupantAt(4, 0))
	assert.EqualValues(t, 0, g.OccupantAt(0, 100))

	// Footprints sticking out are rejected whole.
	assert.False(t, g.CanPlace(3, 3, 2, 2))
	assert.False(t, g.PlaceFootprint(3, 3, 2, 2, 5))
	assert.EqualValues(t, 0, g.OccupantAt(3, 3))

	// Clearing out of bounds is a no-op.
	g.ClearFootprint(-2, -2, 10, 10)
}

func TestFootprintGrid_ClearIsUnconditional(t *testing.T) {
	g := world.NewFootprintGrid(8, 8)
	require.True(t, g.PlaceFootprint(1, 1, 2, 2, 9))

	g.ClearFootprint(1, 1, 2, 2)
	assert.EqualValues(t, 0, g.OccupantAt(1, 1))
	assert.EqualValues(t, 0, g.OccupantAt(2, 2))
	assert.True(t, g.CanPlace(1, 1, 2, 2))
}
