package system

import (
	"time"

	"github.com/gridhaven/server/internal/config"
	"github.com/gridhaven/server/internal/core/ecs"
	"github.com/gridhaven/server/internal/core/event"
	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/world"
	"go.uber.org/zap"
)

// DebrisSystem decrements every debris clear timer each tick and removes
// expired entities from the store. Phase 3 (PostUpdate). The footprint was
// already vacated when the debris was attached; removal is deferred to the
// cleanup flush so a debris entity is still observable during the tick it
// expires.
type DebrisSystem struct {
	state    *world.State
	clock    *world.Clock
	bus      *event.Bus
	treasury *world.Treasury
	ecoCfg   config.EconomyConfig
	log      *zap.Logger
}

func NewDebrisSystem(
	state *world.State,
	clock *world.Clock,
	bus *event.Bus,
	treasury *world.Treasury,
	ecoCfg config.EconomyConfig,
	log *zap.Logger,
) *DebrisSystem {
	return &DebrisSystem{
		state:    state,
		clock:    clock,
		bus:      bus,
		treasury: treasury,
		ecoCfg:   ecoCfg,
		log:      log,
	}
}

func (s *DebrisSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DebrisSystem) Update(_ time.Duration) {
	ecs.Each2(s.state.Buildings, s.state.DebrisFields,
		func(id ecs.EntityID, b *world.Building, d *world.Debris) {
			if b.State != world.StateDeconstructed {
				return
			}
			d.ClearTimer--
			if d.ClearTimer > 0 {
				return
			}
			s.clear(b, false)
		})
}

// ClearDebris is the manual path: a fixed fee removes debris early
// regardless of the remaining timer. Insufficient credits leaves the
// entity untouched.
func (s *DebrisSystem) ClearDebris(id ecs.EntityID, owner world.OwnerID) world.Result {
	b, ok := s.state.Get(id)
	if !ok {
		return world.Fail(world.ReasonNotFound)
	}
	if !s.state.DebrisFields.Has(id) {
		return world.Fail(world.ReasonNotFound)
	}
	if b.OwnerID != owner {
		return world.Fail(world.ReasonNotOwned)
	}
	cost := s.ecoCfg.DebrisClearCost
	if cost > 0 && s.treasury != nil {
		if !s.treasury.DeductCredits(owner, cost) {
			return world.Fail(world.ReasonInsufficientCredits)
		}
	}
	s.clear(b, true)
	return world.Ok(cost)
}

func (s *DebrisSystem) clear(b *world.Building, paid bool) {
	s.state.DebrisFields.Remove(b.ID)
	s.state.MarkForDestruction(b.ID)
	event.Emit(s.bus, world.EvDebrisCleared{
		ID:    b.ID,
		Owner: b.OwnerID,
		X:     b.X,
		Y:     b.Y,
		Paid:  paid,
	})
	s.log.Debug("debris cleared",
		zap.Uint64("id", uint64(b.ID)),
		zap.Bool("paid", paid),
	)
}
