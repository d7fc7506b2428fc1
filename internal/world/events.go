package world

import "github.com/gridhaven/server/internal/core/ecs"

// Simulation events, emitted by the systems and drained once per tick by
// the output phase. External consumers (wire protocol, observer feed)
// never feed anything back into the core.

// EvSpawned fires when the spawner creates a new building (Materializing).
type EvSpawned struct {
	ID         ecs.EntityID
	Owner      OwnerID
	X, Y       int32
	TemplateID int32
	Category   ZoneCategory
	Density    DensityTier
}

// EvStateChanged fires on every lifecycle transition except those covered
// by EvDeconstructed (which carries demolition-specific payload).
type EvStateChanged struct {
	ID       ecs.EntityID
	Owner    OwnerID
	X, Y     int32
	From, To LifecycleState
	Tick     int64
}

// EvConstructionProgress fires on construction milestones (whole quarters).
type EvConstructionProgress struct {
	ID      ecs.EntityID
	Owner   OwnerID
	X, Y    int32
	Elapsed int64
	Total   int64
}

// EvUpgraded fires when level progression raises a building's level.
type EvUpgraded struct {
	ID       ecs.EntityID
	Owner    OwnerID
	X, Y     int32
	Level    int16
	Capacity int32
}

// EvDowngraded fires when level progression lowers a building's level.
type EvDowngraded struct {
	ID       ecs.EntityID
	Owner    OwnerID
	X, Y     int32
	Level    int16
	Capacity int32
}

// EvDeconstructed fires when a building reaches Deconstructed, whether by
// decay, player demolition, or a system de-zone request.
type EvDeconstructed struct {
	ID              ecs.EntityID
	Owner           OwnerID
	X, Y            int32
	PlayerInitiated bool
	CostPaid        int64
}

// EvDebrisCleared fires when a debris entity is removed from the store.
type EvDebrisCleared struct {
	ID    ecs.EntityID
	Owner OwnerID
	X, Y  int32
	Paid  bool
}
