package system

import (
	"time"

	"github.com/gridhaven/server/internal/config"
	"github.com/gridhaven/server/internal/core/event"
	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/data"
	"github.com/gridhaven/server/internal/world"
	"go.uber.org/zap"
)

// TemplateSelector picks a building template for a spawn candidate, or
// reports that none fits. data.TemplateTable implements it; tests stub it.
type TemplateSelector interface {
	Select(cat world.ZoneCategory, den world.DensityTier, desirability int32, x, y int32, tick int64, neighbors []int32) (*data.BuildingTemplate, bool)
}

// SpawningSystem scans designated zones and creates buildings. Phase 1
// (PreUpdate). Work is load-balanced across overseers: an overseer's
// territory is scanned only on ticks where
// (tick + ownerID×staggerOffset) mod scanInterval == 0, and a scan stops
// after maxSpawnsPerScan successes, a hard per-overseer per-tick cap.
type SpawningSystem struct {
	state     *world.State
	clock     *world.Clock
	bus       *event.Bus
	templates TemplateSelector
	providers Providers
	cfg       config.SimulationConfig
	log       *zap.Logger
}

func NewSpawningSystem(
	state *world.State,
	clock *world.Clock,
	bus *event.Bus,
	templates TemplateSelector,
	providers Providers,
	cfg config.SimulationConfig,
	log *zap.Logger,
) *SpawningSystem {
	return &SpawningSystem{
		state:     state,
		clock:     clock,
		bus:       bus,
		templates: templates,
		providers: providers,
		cfg:       cfg,
		log:       log,
	}
}

func (s *SpawningSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *SpawningSystem) Update(_ time.Duration) {
	if s.state.Zones == nil || s.templates == nil || s.cfg.ScanInterval <= 0 {
		return
	}
	tick := s.clock.Now()
	for _, owner := range s.state.Zones.Owners() {
		if (tick+int64(owner)*s.cfg.StaggerOffset)%s.cfg.ScanInterval != 0 {
			continue
		}
		s.scanOwner(owner, tick)
	}
}

// scanOwner walks the owner's designated tiles in row-major order and
// spawns until the per-scan cap is hit. A failed attempt at one tile never
// aborts the scan.
func (s *SpawningSystem) scanOwner(owner world.OwnerID, tick int64) {
	zones := s.state.Zones
	grid := s.state.Grid
	spawned := 0

	for y := int32(0); y < grid.Height(); y++ {
		for x := int32(0); x < grid.Width(); x++ {
			if spawned >= s.cfg.MaxSpawnsPerScan {
				return
			}
			tile, ok := zones.ZoneAt(x, y)
			if !ok || tile.Owner != owner || tile.State != world.ZoneDesignated {
				continue
			}
			if grid.OccupantAt(x, y) != 0 {
				continue
			}
			if s.providers.Transport != nil &&
				!s.providers.Transport.IsRoadAccessibleAt(x, y, s.cfg.RoadSearchDistance) {
				continue
			}

			tpl, ok := s.templates.Select(
				tile.Category, tile.Density, zones.Desirability(x, y),
				x, y, tick, s.neighborTemplates(x, y),
			)
			if !ok {
				continue // no eligible template: skip silently, keep scanning
			}
			if s.providers.Terrain != nil &&
				!s.providers.Terrain.Buildable(x, y, tpl.Width, tpl.Height) {
				continue
			}

			id := s.state.CreateBuilding(tpl.SpawnSpec(), x, y, owner, tick)
			if id == 0 {
				continue // footprint clash with a larger neighbor
			}
			spawned++
			event.Emit(s.bus, world.EvSpawned{
				ID:         id,
				Owner:      owner,
				X:          x,
				Y:          y,
				TemplateID: tpl.TemplateID,
				Category:   tile.Category,
				Density:    tile.Density,
			})
			s.log.Debug("building spawned",
				zap.Uint64("id", uint64(id)),
				zap.Int32("owner", int32(owner)),
				zap.Int32("x", x), zap.Int32("y", y),
				zap.Int32("template", tpl.TemplateID),
			)
		}
	}
}

// neighborTemplates gathers the template ids of the four orthogonal
// neighbor footprints, for selection variety.
func (s *SpawningSystem) neighborTemplates(x, y int32) []int32 {
	var out []int32
	for _, d := range [4][2]int32{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		id := s.state.Grid.OccupantAt(x+d[0], y+d[1])
		if id == 0 {
			continue
		}
		if b, ok := s.state.Get(id); ok {
			out = append(out, b.TemplateID)
		}
	}
	return out
}
