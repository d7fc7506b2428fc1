// Package utility holds the reference energy/fluid coverage and road
// access providers. The core consumes them only through the provider
// interfaces in internal/world; tests use stubs instead.
package utility

import (
	"github.com/gridhaven/server/internal/core/ecs"
)

// Coverage is a per-building service flag set, used for both the energy
// and the fluid nets. Buildings default to covered; an outage is recorded
// explicitly. Implements world.EnergyProvider / world.FluidProvider
// depending on which net it is wired to.
type Coverage struct {
	outages map[ecs.EntityID]struct{}
}

func NewCoverage() *Coverage {
	return &Coverage{outages: make(map[ecs.EntityID]struct{})}
}

// SetOutage records or clears an outage for a building.
func (c *Coverage) SetOutage(id ecs.EntityID, out bool) {
	if out {
		c.outages[id] = struct{}{}
	} else {
		delete(c.outages, id)
	}
}

func (c *Coverage) covered(id ecs.EntityID) bool {
	_, out := c.outages[id]
	return !out
}

func (c *Coverage) IsPowered(id ecs.EntityID) bool { return c.covered(id) }
func (c *Coverage) HasFluid(id ecs.EntityID) bool  { return c.covered(id) }
