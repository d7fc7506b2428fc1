package system

import (
	"time"

	"github.com/gridhaven/server/internal/config"
	"github.com/gridhaven/server/internal/core/ecs"
	"github.com/gridhaven/server/internal/core/event"
	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/scripting"
	"github.com/gridhaven/server/internal/world"
	"go.uber.org/zap"
)

// DemolitionRequest is one queued removal. Player requests address a
// building id and pay; system requests (the de-zone flow) address a grid
// position and skip ownership and cost entirely.
type DemolitionRequest struct {
	PlayerInitiated bool
	ID              ecs.EntityID // player path
	Owner           world.OwnerID
	X, Y            int32 // system path
	Session         *net.Session
}

// DemolitionSystem processes queued demolition requests once per tick.
// Phase 2 (Update), after progression. The cost model and all state
// mutation live on the methods so tests and handlers can call them
// directly.
type DemolitionSystem struct {
	state    *world.State
	clock    *world.Clock
	bus      *event.Bus
	treasury *world.Treasury
	lua      *scripting.Engine
	simCfg   config.SimulationConfig
	ecoCfg   config.EconomyConfig
	queue    []DemolitionRequest
	log      *zap.Logger
}

func NewDemolitionSystem(
	state *world.State,
	clock *world.Clock,
	bus *event.Bus,
	treasury *world.Treasury,
	lua *scripting.Engine,
	simCfg config.SimulationConfig,
	ecoCfg config.EconomyConfig,
	log *zap.Logger,
) *DemolitionSystem {
	return &DemolitionSystem{
		state:    state,
		clock:    clock,
		bus:      bus,
		treasury: treasury,
		lua:      lua,
		simCfg:   simCfg,
		ecoCfg:   ecoCfg,
		log:      log,
	}
}

func (s *DemolitionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Enqueue adds a request for the next processing pass. Called by the input
// phase handlers and by the zone de-zone flow.
func (s *DemolitionSystem) Enqueue(req DemolitionRequest) {
	s.queue = append(s.queue, req)
}

func (s *DemolitionSystem) Update(_ time.Duration) {
	if len(s.queue) == 0 {
		return
	}
	pending := s.queue
	s.queue = s.queue[:0]
	for _, req := range pending {
		var res world.Result
		if req.PlayerInitiated {
			res = s.Demolish(req.ID, req.Owner)
		} else {
			res = s.DemolitionRequest(req.X, req.Y)
		}
		if req.Session != nil {
			sendDemolishResult(req.Session, req.ID, res)
		}
	}
}

// Demolish is the player-initiated path: ownership check, state-dependent
// cost, atomic credit deduction. Insufficient funds fails the whole
// operation with no state change.
func (s *DemolitionSystem) Demolish(id ecs.EntityID, owner world.OwnerID) world.Result {
	b, ok := s.state.Get(id)
	if !ok {
		return world.Fail(world.ReasonNotFound)
	}
	if b.OwnerID != owner {
		return world.Fail(world.ReasonNotOwned)
	}
	if b.State == world.StateDeconstructed {
		return world.Fail(world.ReasonAlreadyDeconstructed)
	}

	modifier := s.lua.DemolitionStateModifier(b.State.String())
	cost := s.lua.CalcDemolitionCost(b.ConstructionCost, s.ecoCfg.DemolitionCostRatio, modifier)
	if cost > 0 && s.treasury != nil {
		if !s.treasury.DeductCredits(owner, cost) {
			return world.Fail(world.ReasonInsufficientCredits)
		}
	}

	s.deconstruct(b, true, cost)
	return world.Ok(cost)
}

// DemolitionRequest is the system-initiated path: the building is resolved
// through the grid, ownership and cost are skipped. Used when an external
// de-zone flow removes an occupied tile.
func (s *DemolitionSystem) DemolitionRequest(x, y int32) world.Result {
	id := s.state.Grid.OccupantAt(x, y)
	if id == 0 {
		return world.Fail(world.ReasonNotFound)
	}
	b, ok := s.state.Get(id)
	if !ok {
		return world.Fail(world.ReasonNotFound)
	}
	if b.State == world.StateDeconstructed {
		return world.Fail(world.ReasonAlreadyDeconstructed)
	}
	s.deconstruct(b, false, 0)
	return world.Ok(0)
}

func (s *DemolitionSystem) deconstruct(b *world.Building, playerInitiated bool, cost int64) {
	tick := s.clock.Now()
	s.state.Deconstruct(b, tick, s.simCfg.DebrisClearTicks)
	event.Emit(s.bus, world.EvDeconstructed{
		ID:              b.ID,
		Owner:           b.OwnerID,
		X:               b.X,
		Y:               b.Y,
		PlayerInitiated: playerInitiated,
		CostPaid:        cost,
	})
	s.log.Info("building deconstructed",
		zap.Uint64("id", uint64(b.ID)),
		zap.Bool("player", playerInitiated),
		zap.Int64("cost", cost),
	)
}
