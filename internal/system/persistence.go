package system

import (
	"context"
	"time"

	"github.com/gridhaven/server/internal/config"
	"github.com/gridhaven/server/internal/core/ecs"
	coresys "github.com/gridhaven/server/internal/core/system"
	"github.com/gridhaven/server/internal/persist"
	"github.com/gridhaven/server/internal/world"
	"go.uber.org/zap"
)

// PersistSystem flushes simulation state to the database. Phase 5 (Persist).
// The economic ledger drains every tick it is non-empty; the full building
// snapshot and treasury balances flush on the save interval. A nil DB
// (running without persistence) turns the system into a no-op.
type PersistSystem struct {
	state     *world.State
	clock     *world.Clock
	treasury  *world.Treasury
	buildings *persist.BuildingRepo
	treasRepo *persist.TreasuryRepo
	wal       *persist.WALRepo
	simCfg    config.SimulationConfig
	log       *zap.Logger
}

func NewPersistSystem(
	state *world.State,
	clock *world.Clock,
	treasury *world.Treasury,
	buildings *persist.BuildingRepo,
	treasRepo *persist.TreasuryRepo,
	wal *persist.WALRepo,
	simCfg config.SimulationConfig,
	log *zap.Logger,
) *PersistSystem {
	return &PersistSystem{
		state:     state,
		clock:     clock,
		treasury:  treasury,
		buildings: buildings,
		treasRepo: treasRepo,
		wal:       wal,
		simCfg:    simCfg,
		log:       log,
	}
}

func (s *PersistSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistSystem) Update(_ time.Duration) {
	if s.wal != nil && s.treasury != nil {
		s.flushLedger()
	}
	tick := s.clock.Now()
	if s.buildings == nil || s.simCfg.SaveIntervalTicks <= 0 ||
		tick == 0 || tick%s.simCfg.SaveIntervalTicks != 0 {
		return
	}
	s.Flush(context.Background())
}

// Flush writes the building snapshot and treasury balances immediately,
// regardless of the save interval. Called on shutdown.
func (s *PersistSystem) Flush(ctx context.Context) {
	if s.buildings == nil {
		return
	}
	tick := s.clock.Now()
	rows := s.snapshot()
	if err := s.buildings.SaveAll(ctx, tick, rows); err != nil {
		s.log.Error("building snapshot failed",
			zap.Int64("tick", tick), zap.Error(err))
		return
	}
	if s.treasRepo != nil && s.treasury != nil {
		balances := make(map[int32]int64, len(s.treasury.Balances()))
		for owner, credits := range s.treasury.Balances() {
			balances[int32(owner)] = credits
		}
		if err := s.treasRepo.SaveAll(ctx, balances); err != nil {
			s.log.Error("treasury flush failed", zap.Error(err))
			return
		}
	}
	s.log.Info("snapshot saved",
		zap.Int64("tick", tick), zap.Int("buildings", len(rows)))
}

func (s *PersistSystem) flushLedger() {
	entries := s.treasury.DrainJournal()
	if len(entries) == 0 {
		return
	}
	rows := make([]persist.LedgerRow, len(entries))
	for i, e := range entries {
		rows[i] = persist.LedgerRow{
			OverseerID: int32(e.Owner),
			Amount:     e.Amount,
			Kind:       e.Kind,
			At:         e.At,
		}
	}
	if err := s.wal.Append(context.Background(), rows); err != nil {
		s.log.Error("ledger append failed",
			zap.Int("entries", len(rows)), zap.Error(err))
	}
}

func (s *PersistSystem) snapshot() []persist.BuildingRow {
	rows := make([]persist.BuildingRow, 0, s.state.Count())
	s.state.EachBuilding(func(b *world.Building) {
		row := persist.BuildingRow{
			ID:               int64(b.ID),
			OverseerID:       int32(b.OwnerID),
			X:                b.X,
			Y:                b.Y,
			Width:            b.Width,
			Height:           b.Height,
			TemplateID:       b.TemplateID,
			Category:         int16(b.Category),
			Density:          int16(b.Density),
			State:            int16(b.State),
			Level:            b.Level,
			MaxLevel:         b.MaxLevel,
			Capacity:         b.Capacity,
			Occupancy:        b.Occupancy,
			Health:           int16(b.Health),
			ConstructionCost: b.ConstructionCost,
			StateChangedTick: b.StateChangedTick,
		}
		if c, ok := s.state.Construction.Get(b.ID); ok {
			elapsed, total := c.ElapsedTicks, c.TotalTicks
			row.ConstructionElapsed = &elapsed
			row.ConstructionTotal = &total
		}
		if d, ok := s.state.DebrisFields.Get(b.ID); ok {
			timer := d.ClearTimer
			row.DebrisTimer = &timer
		}
		if b.State == world.StateAbandoned {
			if g, ok := s.state.Grace.Get(b.ID); ok {
				timer := g.AbandonTimer
				row.AbandonTimer = &timer
			}
		}
		rows = append(rows, row)
	})
	return rows
}

// RestoreSnapshot loads the stored rows back into live state and returns
// the tick the snapshot was taken at.
func RestoreSnapshot(state *world.State, repo *persist.BuildingRepo, log *zap.Logger) (int64, error) {
	rows, tick, err := repo.LoadAll(context.Background())
	if err != nil {
		return 0, err
	}
	restored := RestoreRows(state, rows, log)
	log.Info("snapshot restored",
		zap.Int64("tick", tick), zap.Int("buildings", restored))
	return tick, nil
}

// RestoreRows reinserts snapshot rows into live state and returns how many
// took. Rows whose footprint can no longer be claimed are skipped.
func RestoreRows(state *world.State, rows []persist.BuildingRow, log *zap.Logger) int {
	restored := 0
	for _, row := range rows {
		b := &world.Building{
			ID:               ecs.EntityID(row.ID),
			OwnerID:          world.OwnerID(row.OverseerID),
			X:                row.X,
			Y:                row.Y,
			Width:            row.Width,
			Height:           row.Height,
			TemplateID:       row.TemplateID,
			Category:         world.ZoneCategory(row.Category),
			Density:          world.DensityTier(row.Density),
			State:            world.LifecycleState(row.State),
			Level:            row.Level,
			MaxLevel:         row.MaxLevel,
			Capacity:         row.Capacity,
			Occupancy:        row.Occupancy,
			Health:           uint8(row.Health),
			ConstructionCost: row.ConstructionCost,
			StateChangedTick: row.StateChangedTick,
		}
		var c *world.ConstructionSite
		if row.ConstructionElapsed != nil && row.ConstructionTotal != nil {
			c = &world.ConstructionSite{
				ElapsedTicks: *row.ConstructionElapsed,
				TotalTicks:   *row.ConstructionTotal,
				Cost:         row.ConstructionCost,
			}
		}
		var d *world.Debris
		if row.DebrisTimer != nil {
			d = &world.Debris{
				ClearTimer: *row.DebrisTimer,
				TemplateID: row.TemplateID,
				Width:      row.Width,
				Height:     row.Height,
			}
		}
		if state.RestoreBuilding(b, c, d) {
			// Re-seat the abandon countdown so a restart keeps the dwell
			// time already served.
			if row.AbandonTimer != nil {
				state.GraceFor(b.ID).AbandonTimer = *row.AbandonTimer
			}
			restored++
		} else {
			log.Warn("snapshot row could not be restored",
				zap.Int64("id", row.ID), zap.Int32("x", row.X), zap.Int32("y", row.Y))
		}
	}
	return restored
}
