package world

import "github.com/gridhaven/server/internal/core/ecs"

// ZoneState is the external zone layer's per-tile designation state.
type ZoneState uint8

const (
	ZoneDesignated ZoneState = iota
	ZoneOccupied
	ZoneStalled
)

// ZoneTile describes one tile of the zone layer.
type ZoneTile struct {
	Category ZoneCategory
	Density  DensityTier
	State    ZoneState
	Owner    OwnerID
}

// Providers are the capability interfaces the simulation core consumes but
// does not own. Concrete implementations live in internal/zone and
// internal/utility; tests swap in stubs. A nil provider makes the
// dependent system no-op for the tick rather than crash.

// CreditProvider deducts credits atomically: the deduction either happens
// in full or not at all.
type CreditProvider interface {
	DeductCredits(owner OwnerID, amount int64) bool
}

// EnergyProvider reports whether a building is reached by the energy net.
type EnergyProvider interface {
	IsPowered(id ecs.EntityID) bool
}

// FluidProvider reports whether a building is reached by the fluid net.
type FluidProvider interface {
	HasFluid(id ecs.EntityID) bool
}

// TransportProvider reports road access within maxDistance of a position.
type TransportProvider interface {
	IsRoadAccessibleAt(x, y int32, maxDistance int) bool
}

// ZoneLayer is the external zone grid: designation queries, per-category
// demand, desirability, and the occupied/vacated marks this core requests
// when footprints come and go.
type ZoneLayer interface {
	ZoneAt(x, y int32) (ZoneTile, bool)
	Demand(owner OwnerID, cat ZoneCategory) int32
	Desirability(x, y int32) int32
	MarkOccupied(x, y, w, h int32)
	MarkVacated(x, y, w, h int32)
	Owners() []OwnerID
}

// TerrainProvider answers buildability for a candidate footprint.
type TerrainProvider interface {
	Buildable(x, y, w, h int32) bool
}
