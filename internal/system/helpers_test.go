package system_test

import (
	"time"

	"github.com/gridhaven/server/internal/config"
	"github.com/gridhaven/server/internal/core/ecs"
	"github.com/gridhaven/server/internal/core/event"
	"github.com/gridhaven/server/internal/data"
	"github.com/gridhaven/server/internal/world"
	"github.com/gridhaven/server/internal/zone"
	"go.uber.org/zap"
)

const dt = 50 * time.Millisecond

// env bundles the pieces every system test needs. Providers default to nil
// (always available); tests override what they exercise.
type env struct {
	state    *world.State
	zones    *zone.Grid
	clock    *world.Clock
	bus      *event.Bus
	treasury *world.Treasury
	cfg      config.SimulationConfig
	eco      config.EconomyConfig
	log      *zap.Logger
}

func newEnv() *env {
	defaults := config.Defaults()
	zones := zone.NewGrid(32, 32)
	return &env{
		state:    world.NewState(32, 32, zones),
		zones:    zones,
		clock:    world.NewClock(),
		bus:      event.NewBus(),
		treasury: world.NewTreasury(defaults.Economy.StartingCredits),
		cfg:      defaults.Simulation,
		eco:      defaults.Economy,
		log:      zap.NewNop(),
	}
}

// deliver flushes this tick's emitted events to subscribers.
func (e *env) deliver() {
	e.bus.SwapBuffers()
	e.bus.DispatchAll()
}

// collect subscribes a capture slice for one event type.
func collect[T any](bus *event.Bus) *[]T {
	out := &[]T{}
	event.Subscribe(bus, func(ev T) {
		*out = append(*out, ev)
	})
	return out
}

func habitationSpec() world.SpawnSpec {
	return world.SpawnSpec{
		TemplateID:       101,
		Category:         world.ZoneHabitation,
		Density:          world.DensityLow,
		Width:            1,
		Height:           1,
		BaseCapacity:     20,
		MaxLevel:         5,
		ConstructionTick: 100,
		ConstructionCost: 500,
	}
}

// activeBuilding places a finished 1×1 building for owner 1 and returns it.
func (e *env) activeBuilding(x, y int32, tick int64) *world.Building {
	e.zones.Designate(x, y, 1, 1, world.ZoneHabitation, world.DensityLow, 1)
	id := e.state.CreateBuilding(habitationSpec(), x, y, 1, tick)
	b, _ := e.state.Get(id)
	b.State = world.StateActive
	e.state.Construction.Remove(id)
	return b
}

// fixedSelector always offers the same template.
type fixedSelector struct {
	tpl data.BuildingTemplate
}

func (f *fixedSelector) Select(
	_ world.ZoneCategory, _ world.DensityTier, _ int32,
	_, _ int32, _ int64, _ []int32,
) (*data.BuildingTemplate, bool) {
	tpl := f.tpl
	return &tpl, true
}

// outage flags services as absent for every building. Implements the
// energy and fluid providers; flip the fields mid-test to simulate
// failures and repairs.
type outage struct {
	energy bool
	fluid  bool
}

func (o *outage) IsPowered(_ ecs.EntityID) bool { return !o.energy }
func (o *outage) HasFluid(_ ecs.EntityID) bool  { return !o.fluid }

var (
	_ world.EnergyProvider = (*outage)(nil)
	_ world.FluidProvider  = (*outage)(nil)
)
