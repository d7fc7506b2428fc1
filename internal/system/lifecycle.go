package system

import (
	"time"

	"github.com/gridhaven/server/internal/config"
	"github.com/gridhaven/server/internal/core/event"
	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/world"
	"go.uber.org/zap"
)

// LifecycleSystem drives Active↔Abandoned↔Derelict↔Deconstructed decay and
// recovery from the utility grace counters. Phase 2 (Update), after
// construction. Materializing and Deconstructed buildings are owned by the
// construction and debris systems and are not evaluated here.
//
// Each building's transition depends only on its own prior-tick counters
// and this tick's read-only provider queries, so evaluation order over the
// store cannot affect the outcome.
type LifecycleSystem struct {
	state     *world.State
	clock     *world.Clock
	bus       *event.Bus
	providers Providers
	cfg       config.SimulationConfig
	log       *zap.Logger
}

func NewLifecycleSystem(
	state *world.State,
	clock *world.Clock,
	bus *event.Bus,
	providers Providers,
	cfg config.SimulationConfig,
	log *zap.Logger,
) *LifecycleSystem {
	return &LifecycleSystem{
		state:     state,
		clock:     clock,
		bus:       bus,
		providers: providers,
		cfg:       cfg,
		log:       log,
	}
}

func (s *LifecycleSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *LifecycleSystem) Update(_ time.Duration) {
	tick := s.clock.Now()
	s.state.EachBuilding(func(b *world.Building) {
		switch b.State {
		case world.StateActive:
			s.evalActive(b, tick)
		case world.StateAbandoned:
			s.evalAbandoned(b, tick)
		case world.StateDerelict:
			s.evalDerelict(b, tick)
		}
	})
}

// services returns this tick's availability of energy, fluid and transport
// for the building. A nil provider counts as available.
func (s *LifecycleSystem) services(b *world.Building) (energy, fluid, transport bool) {
	energy = s.providers.Energy == nil || s.providers.Energy.IsPowered(b.ID)
	fluid = s.providers.Fluid == nil || s.providers.Fluid.HasFluid(b.ID)
	transport = s.providers.Transport == nil ||
		s.providers.Transport.IsRoadAccessibleAt(b.X, b.Y, s.cfg.RoadSearchDistance)
	return
}

func (s *LifecycleSystem) evalActive(b *world.Building, tick int64) {
	energy, fluid, transport := s.services(b)
	g := s.state.GraceFor(b.ID)

	// Counters are independent: each increments only while its own service
	// is absent and resets the instant it returns.
	g.EnergyOut = bump(g.EnergyOut, energy)
	g.FluidOut = bump(g.FluidOut, fluid)
	g.TransportOut = bump(g.TransportOut, transport)

	// A grace period of 0 abandons on the very first absent tick; a period
	// of N tolerates exactly N ticks and abandons on tick N+1.
	if g.EnergyOut > s.cfg.EnergyGraceTicks ||
		g.FluidOut > s.cfg.FluidGraceTicks ||
		g.TransportOut > s.cfg.TransportGraceTicks {
		g.ResetServiceCounters()
		g.AbandonTimer = s.cfg.AbandonTimerTicks
		s.transition(b, world.StateAbandoned, tick)
	}
}

func bump(counter int64, serviced bool) int64 {
	if serviced {
		return 0
	}
	return counter + 1
}

func (s *LifecycleSystem) evalAbandoned(b *world.Building, tick int64) {
	energy, fluid, transport := s.services(b)
	if energy && fluid && transport {
		// Full service restores immediately.
		s.state.Grace.Remove(b.ID)
		b.Health = world.FullHealth
		s.transition(b, world.StateActive, tick)
		return
	}

	if b.Health > 0 {
		b.Health--
	}

	g := s.state.GraceFor(b.ID)
	g.AbandonTimer--
	if g.AbandonTimer <= 0 {
		s.transition(b, world.StateDerelict, tick)
	}
}

func (s *LifecycleSystem) evalDerelict(b *world.Building, tick int64) {
	if b.Health > 0 {
		b.Health--
	}
	if tick-b.StateChangedTick < s.cfg.DerelictTicks {
		return
	}
	// Fully decayed: vacate the footprint and leave debris behind.
	s.state.Deconstruct(b, tick, s.cfg.DebrisClearTicks)
	event.Emit(s.bus, world.EvDeconstructed{
		ID:              b.ID,
		Owner:           b.OwnerID,
		X:               b.X,
		Y:               b.Y,
		PlayerInitiated: false,
	})
	s.log.Debug("building decayed to debris",
		zap.Uint64("id", uint64(b.ID)),
		zap.Int64("tick", tick),
	)
}

func (s *LifecycleSystem) transition(b *world.Building, to world.LifecycleState, tick int64) {
	from := b.State
	b.State = to
	b.StateChangedTick = tick
	event.Emit(s.bus, world.EvStateChanged{
		ID:    b.ID,
		Owner: b.OwnerID,
		X:     b.X,
		Y:     b.Y,
		From:  from,
		To:    to,
		Tick:  tick,
	})
}
