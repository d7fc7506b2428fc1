package system

import (
	"time"

	"github.com/gridhaven/server/internal/config"
	"github.com/gridhaven/server/internal/core/event"
	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/scripting"
	"github.com/gridhaven/server/internal/world"
	"go.uber.org/zap"
)

// ProgressionSystem evaluates Active buildings for level upgrades and
// downgrades. Phase 2 (Update), after lifecycle. The demand-stress counter
// runs every tick; the actual up/down evaluation only on ticks where
// tick mod checkInterval == 0.
type ProgressionSystem struct {
	state *world.State
	clock *world.Clock
	bus   *event.Bus
	lua   *scripting.Engine
	cfg   config.SimulationConfig
	log   *zap.Logger
}

func NewProgressionSystem(
	state *world.State,
	clock *world.Clock,
	bus *event.Bus,
	lua *scripting.Engine,
	cfg config.SimulationConfig,
	log *zap.Logger,
) *ProgressionSystem {
	return &ProgressionSystem{
		state: state,
		clock: clock,
		bus:   bus,
		lua:   lua,
		cfg:   cfg,
		log:   log,
	}
}

func (s *ProgressionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ProgressionSystem) Update(_ time.Duration) {
	if s.state.Zones == nil {
		return
	}
	tick := s.clock.Now()
	check := s.cfg.CheckInterval > 0 && tick%s.cfg.CheckInterval == 0

	s.state.EachInState(world.StateActive, func(b *world.Building) {
		// Demand stress accumulates every tick so "sustained negative
		// demand for N ticks" means N consecutive ticks, not N checks.
		g := s.state.GraceFor(b.ID)
		if s.state.Zones.Demand(b.OwnerID, b.Category) < 0 {
			g.DemandStress++
		} else {
			g.DemandStress = 0
		}

		if !check {
			return
		}
		if s.tryUpgrade(b, tick) {
			return
		}
		s.tryDowngrade(b, g, tick)
	})
}

func (s *ProgressionSystem) tryUpgrade(b *world.Building, tick int64) bool {
	maxLevel := b.MaxLevel
	if maxLevel > world.MaxLevel {
		maxLevel = world.MaxLevel
	}
	if b.Level >= maxLevel {
		return false
	}
	if tick-b.StateChangedTick <= s.cfg.UpgradeCooldown {
		return false
	}
	if s.state.Zones.Demand(b.OwnerID, b.Category) <= 0 {
		return false
	}
	next := b.Level + 1
	if s.state.Zones.Desirability(b.X, b.Y) < s.lua.UpgradeDesirabilityThreshold(next) {
		return false
	}

	s.setLevel(b, next, tick)
	event.Emit(s.bus, world.EvUpgraded{
		ID:       b.ID,
		Owner:    b.OwnerID,
		X:        b.X,
		Y:        b.Y,
		Level:    b.Level,
		Capacity: b.Capacity,
	})
	s.log.Debug("building upgraded",
		zap.Uint64("id", uint64(b.ID)),
		zap.Int16("level", b.Level),
		zap.Int32("capacity", b.Capacity),
	)
	return true
}

func (s *ProgressionSystem) tryDowngrade(b *world.Building, g *world.GraceState, tick int64) {
	if b.Level <= world.MinLevel {
		return
	}
	lowValue := s.state.Zones.Desirability(b.X, b.Y) < s.lua.DowngradeLandValueFloor(b.Level)
	sustained := s.cfg.DowngradeDelay > 0 && g.DemandStress >= s.cfg.DowngradeDelay
	if !lowValue && !sustained {
		return
	}

	s.setLevel(b, b.Level-1, tick)
	event.Emit(s.bus, world.EvDowngraded{
		ID:       b.ID,
		Owner:    b.OwnerID,
		X:        b.X,
		Y:        b.Y,
		Level:    b.Level,
		Capacity: b.Capacity,
	})
	s.log.Debug("building downgraded",
		zap.Uint64("id", uint64(b.ID)),
		zap.Int16("level", b.Level),
		zap.Int32("capacity", b.Capacity),
	)
}

// setLevel applies a level change, rescaling capacity from the stored value
// rather than re-reading the template.
func (s *ProgressionSystem) setLevel(b *world.Building, level int16, tick int64) {
	b.Capacity = world.RecomputeCapacity(b.Capacity, b.Level, level)
	b.Level = level
	b.StateChangedTick = tick
}
