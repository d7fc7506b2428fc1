package system

import "github.com/gridhaven/server/internal/world"

// Providers bundles the external capability interfaces the systems
// consume. Any nil member makes the checks that depend on it no-op for the
// tick (the service counts as available, spends count as free).
type Providers struct {
	Credits   world.CreditProvider
	Energy    world.EnergyProvider
	Fluid     world.FluidProvider
	Transport world.TransportProvider
	Terrain   world.TerrainProvider
}
