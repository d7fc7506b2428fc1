package world

import (
	"github.com/gridhaven/server/internal/core/ecs"
)

// SpawnSpec carries the template-derived values a new building is created
// from. The spawner builds one from the selected template.
type SpawnSpec struct {
	TemplateID       int32
	Category         ZoneCategory
	Density          DensityTier
	Width, Height    int32
	BaseCapacity     int32
	MaxLevel         int16
	ConstructionTick int64
	ConstructionCost int64
}

// State owns all building records and the footprint grid. Buildings,
// construction sites, debris and grace counters are component stores keyed
// by entity id; the registry wipes all of them when an entity is destroyed.
// Accessed only from the simulation loop goroutine; no locks needed.
type State struct {
	ecs *ecs.World

	Buildings    *ecs.PtrComponentStore[Building]
	Construction *ecs.PtrComponentStore[ConstructionSite]
	DebrisFields *ecs.PtrComponentStore[Debris]
	Grace        *ecs.PtrComponentStore[GraceState]

	Grid  *FootprintGrid
	Zones ZoneLayer
}

func NewState(gridWidth, gridHeight int, zones ZoneLayer) *State {
	s := &State{
		ecs:          ecs.NewWorld(),
		Buildings:    ecs.NewPtrComponentStore[Building](),
		Construction: ecs.NewPtrComponentStore[ConstructionSite](),
		DebrisFields: ecs.NewPtrComponentStore[Debris](),
		Grace:        ecs.NewPtrComponentStore[GraceState](),
		Grid:         NewFootprintGrid(gridWidth, gridHeight),
		Zones:        zones,
	}
	s.ecs.Registry().Register(s.Buildings)
	s.ecs.Registry().Register(s.Construction)
	s.ecs.Registry().Register(s.DebrisFields)
	s.ecs.Registry().Register(s.Grace)
	return s
}

// CreateBuilding allocates the next id, initializes the record in
// Materializing with its construction site, claims the footprint, and asks
// the zone layer to mark the covered tiles Occupied. Returns 0 if the
// footprint cannot be placed.
func (s *State) CreateBuilding(spec SpawnSpec, x, y int32, owner OwnerID, tick int64) ecs.EntityID {
	if !s.Grid.CanPlace(x, y, spec.Width, spec.Height) {
		return 0
	}
	id := s.ecs.CreateEntity()
	s.Grid.PlaceFootprint(x, y, spec.Width, spec.Height, id)

	b := &Building{
		ID:               id,
		OwnerID:          owner,
		X:                x,
		Y:                y,
		Width:            spec.Width,
		Height:           spec.Height,
		TemplateID:       spec.TemplateID,
		Category:         spec.Category,
		Density:          spec.Density,
		State:            StateMaterializing,
		Level:            MinLevel,
		MaxLevel:         spec.MaxLevel,
		Capacity:         spec.BaseCapacity,
		Health:           FullHealth,
		ConstructionCost: spec.ConstructionCost,
		StateChangedTick: tick,
	}
	s.Buildings.Set(id, b)
	s.Construction.Set(id, &ConstructionSite{
		TotalTicks: spec.ConstructionTick,
		Cost:       spec.ConstructionCost,
	})

	if s.Zones != nil {
		s.Zones.MarkOccupied(x, y, spec.Width, spec.Height)
	}
	return id
}

// RestoreBuilding reinserts a snapshot-loaded record, reclaiming its id
// and footprint. Construction and debris components re-attach only when
// the lifecycle state calls for them.
func (s *State) RestoreBuilding(b *Building, c *ConstructionSite, d *Debris) bool {
	if b.ID == 0 {
		return false
	}
	if b.State != StateDeconstructed {
		if !s.Grid.PlaceFootprint(b.X, b.Y, b.Width, b.Height, b.ID) {
			return false
		}
		if s.Zones != nil {
			s.Zones.MarkOccupied(b.X, b.Y, b.Width, b.Height)
		}
	}
	s.ecs.Pool().Adopt(b.ID)
	s.Buildings.Set(b.ID, b)
	if b.State == StateMaterializing && c != nil {
		s.Construction.Set(b.ID, c)
	}
	if b.State == StateDeconstructed && d != nil {
		s.DebrisFields.Set(b.ID, d)
	}
	return true
}

// Get returns the building record for id.
func (s *State) Get(id ecs.EntityID) (*Building, bool) {
	return s.Buildings.Get(id)
}

// Remove erases the record and every attached component, reporting whether
// it existed. It does not touch the grid: callers clear footprints first.
func (s *State) Remove(id ecs.EntityID) bool {
	if !s.ecs.Alive(id) {
		return false
	}
	s.ecs.Registry().RemoveAll(id)
	s.ecs.Pool().Destroy(id)
	return true
}

// MarkForDestruction queues an entity for the end-of-tick cleanup flush.
func (s *State) MarkForDestruction(id ecs.EntityID) {
	s.ecs.MarkForDestruction(id)
}

// FlushDestroyQueue removes all queued entities. Called once per tick by
// CleanupSystem.
func (s *State) FlushDestroyQueue() {
	s.ecs.FlushDestroyQueue()
}

func (s *State) Alive(id ecs.EntityID) bool {
	return s.ecs.Alive(id)
}

func (s *State) Count() int {
	return s.Buildings.Len()
}

// EachBuilding iterates all building records in store order.
func (s *State) EachBuilding(fn func(*Building)) {
	s.Buildings.Each(func(_ ecs.EntityID, b *Building) {
		fn(b)
	})
}

// EachInState iterates buildings currently in the given lifecycle state.
func (s *State) EachInState(st LifecycleState, fn func(*Building)) {
	s.Buildings.Each(func(_ ecs.EntityID, b *Building) {
		if b.State == st {
			fn(b)
		}
	})
}

// EachOwnedBy iterates buildings owned by the given overseer.
func (s *State) EachOwnedBy(owner OwnerID, fn func(*Building)) {
	s.Buildings.Each(func(_ ecs.EntityID, b *Building) {
		if b.OwnerID == owner {
			fn(b)
		}
	})
}

// Deconstruct moves a building into Deconstructed: the footprint is
// cleared and handed back to the zone layer, construction data and grace
// state are discarded, and a debris field with the given clear timer is
// attached. Event emission is the caller's job.
func (s *State) Deconstruct(b *Building, tick, clearTicks int64) {
	s.Grid.ClearFootprint(b.X, b.Y, b.Width, b.Height)
	if s.Zones != nil {
		s.Zones.MarkVacated(b.X, b.Y, b.Width, b.Height)
	}
	s.Construction.Remove(b.ID)
	s.Grace.Remove(b.ID)
	s.DebrisFields.Set(b.ID, &Debris{
		ClearTimer: clearTicks,
		TemplateID: b.TemplateID,
		Width:      b.Width,
		Height:     b.Height,
	})
	b.State = StateDeconstructed
	b.StateChangedTick = tick
}

// GraceFor returns the grace state for id, creating it lazily.
func (s *State) GraceFor(id ecs.EntityID) *GraceState {
	if g, ok := s.Grace.Get(id); ok {
		return g
	}
	g := &GraceState{}
	s.Grace.Set(id, g)
	return g
}
