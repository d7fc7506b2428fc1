package world_test

import (
	"testing"

	"github.com/gridhaven/server/internal/world"
	"github.com/stretchr/testify/assert"
)

func TestRecomputeCapacity(t *testing.T) {
	// Base capacity 100 at level 1; the multiplier table drives the rest.
	assert.EqualValues(t, 150, world.RecomputeCapacity(100, 1, 2))
	assert.EqualValues(t, 200, world.RecomputeCapacity(150, 2, 3))
	assert.EqualValues(t, 300, world.RecomputeCapacity(100, 1, 5))

	// Downgrades recover the base and rescale, so an up-then-down
	// round trip lands back on the original value.
	up := world.RecomputeCapacity(100, 1, 4)
	assert.EqualValues(t, 250, up)
	assert.EqualValues(t, 100, world.RecomputeCapacity(up, 4, 1))
}

func TestRecomputeCapacity_InvalidLevels(t *testing.T) {
	// Out-of-range levels leave the capacity untouched.
	assert.EqualValues(t, 100, world.RecomputeCapacity(100, 0, 2))
	assert.EqualValues(t, 100, world.RecomputeCapacity(100, 1, 6))
}

func TestLifecycleStateString(t *testing.T) {
	assert.Equal(t, "Materializing", world.StateMaterializing.String())
	assert.Equal(t, "Active", world.StateActive.String())
	assert.Equal(t, "Abandoned", world.StateAbandoned.String())
	assert.Equal(t, "Derelict", world.StateDerelict.String())
	assert.Equal(t, "Deconstructed", world.StateDeconstructed.String())
}
