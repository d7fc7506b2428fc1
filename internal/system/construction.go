package system

import (
	"time"

	"github.com/gridhaven/server/internal/core/ecs"
	"github.com/gridhaven/server/internal/core/event"
	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/world"
)

// ConstructionSystem advances every Materializing building's construction
// site one tick and activates it when the counter reaches its total.
// Phase 2 (Update). A building spawned this tick does not progress until
// the next one, so constructionTicks=N completes exactly N ticks after the
// spawn tick.
type ConstructionSystem struct {
	state *world.State
	clock *world.Clock
	bus   *event.Bus
}

func NewConstructionSystem(state *world.State, clock *world.Clock, bus *event.Bus) *ConstructionSystem {
	return &ConstructionSystem{state: state, clock: clock, bus: bus}
}

func (s *ConstructionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ConstructionSystem) Update(_ time.Duration) {
	tick := s.clock.Now()
	ecs.Each2(s.state.Buildings, s.state.Construction,
		func(id ecs.EntityID, b *world.Building, c *world.ConstructionSite) {
			if b.State != world.StateMaterializing || b.StateChangedTick == tick {
				return
			}
			c.ElapsedTicks++
			if c.ElapsedTicks >= c.TotalTicks {
				s.activate(b, tick)
				return
			}
			// Progress milestone at each whole quarter.
			if q := c.TotalTicks / 4; q > 0 && c.ElapsedTicks%q == 0 {
				event.Emit(s.bus, world.EvConstructionProgress{
					ID:      b.ID,
					Owner:   b.OwnerID,
					X:       b.X,
					Y:       b.Y,
					Elapsed: c.ElapsedTicks,
					Total:   c.TotalTicks,
				})
			}
		})
}

func (s *ConstructionSystem) activate(b *world.Building, tick int64) {
	b.State = world.StateActive
	b.StateChangedTick = tick
	s.state.Construction.Remove(b.ID)
	event.Emit(s.bus, world.EvStateChanged{
		ID:    b.ID,
		Owner: b.OwnerID,
		X:     b.X,
		Y:     b.Y,
		From:  world.StateMaterializing,
		To:    world.StateActive,
		Tick:  tick,
	})
}
