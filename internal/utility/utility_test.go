package utility_test

import (
	"testing"

	"github.com/gridhaven/server/internal/utility"
	"github.com/stretchr/testify/assert"
)

func TestCoverage_DefaultsToCovered(t *testing.T) {
	c := utility.NewCoverage()

	assert.True(t, c.IsPowered(1))
	assert.True(t, c.HasFluid(1))

	c.SetOutage(1, true)
	assert.False(t, c.IsPowered(1))
	assert.False(t, c.HasFluid(1))
	assert.True(t, c.IsPowered(2))

	c.SetOutage(1, false)
	assert.True(t, c.IsPowered(1))
}

func TestRoadGrid_AccessWithinChebyshevRadius(t *testing.T) {
	r := utility.NewRoadGrid(16, 16)
	r.SetRoad(5, 5, true)

	assert.True(t, r.IsRoadAccessibleAt(5, 5, 0))
	assert.True(t, r.IsRoadAccessibleAt(7, 7, 2)) // diagonal counts
	assert.False(t, r.IsRoadAccessibleAt(8, 5, 2))
	assert.True(t, r.IsRoadAccessibleAt(8, 5, 3))

	// Scans near the edge stay in bounds.
	assert.False(t, r.IsRoadAccessibleAt(0, 0, 3))
	r.SetRoad(0, 0, true)
	assert.True(t, r.IsRoadAccessibleAt(1, 1, 1))
}

func TestRoadGrid_Buildable(t *testing.T) {
	r := utility.NewRoadGrid(8, 8)
	r.SetRoad(3, 3, true)

	assert.True(t, r.Buildable(0, 0, 2, 2))
	assert.False(t, r.Buildable(2, 2, 2, 2)) // overlaps the road tile
	assert.False(t, r.Buildable(7, 7, 2, 2)) // sticks out of bounds
	assert.False(t, r.Buildable(0, 0, 0, 1))
}
