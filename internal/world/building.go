package world

import "github.com/gridhaven/server/internal/core/ecs"

// OwnerID identifies the overseer (player) that owns a building.
type OwnerID int32

// ZoneCategory is the broad designation a zone carries.
type ZoneCategory uint8

const (
	ZoneHabitation ZoneCategory = iota
	ZoneExchange
	ZoneFabrication
)

func (c ZoneCategory) String() string {
	switch c {
	case ZoneHabitation:
		return "Habitation"
	case ZoneExchange:
		return "Exchange"
	case ZoneFabrication:
		return "Fabrication"
	default:
		return "Unknown"
	}
}

// DensityTier splits each category into low and high density variants.
type DensityTier uint8

const (
	DensityLow DensityTier = iota
	DensityHigh
)

// LifecycleState is the closed 5-value building state set. Only the
// transitions driven by the construction, lifecycle, demolition and debris
// systems ever occur.
type LifecycleState uint8

const (
	StateMaterializing LifecycleState = iota
	StateActive
	StateAbandoned
	StateDerelict
	StateDeconstructed
)

func (s LifecycleState) String() string {
	switch s {
	case StateMaterializing:
		return "Materializing"
	case StateActive:
		return "Active"
	case StateAbandoned:
		return "Abandoned"
	case StateDerelict:
		return "Derelict"
	case StateDeconstructed:
		return "Deconstructed"
	default:
		return "Unknown"
	}
}

const (
	MinLevel = 1
	MaxLevel = 5

	FullHealth = 255
)

// levelMultiplier maps building level to its capacity multiplier.
// Index 0 is unused; upgrade and downgrade share this table so capacity is
// always level-consistent regardless of direction.
var levelMultiplier = [MaxLevel + 1]float64{0, 1.0, 1.5, 2.0, 2.5, 3.0}

// LevelMultiplier returns the capacity multiplier for a level, or 0 for an
// out-of-range level.
func LevelMultiplier(level int16) float64 {
	if level < MinLevel || level > MaxLevel {
		return 0
	}
	return levelMultiplier[level]
}

// RecomputeCapacity rescales a stored capacity from oldLevel to newLevel by
// recovering the base from the stored value. Pure function of the shared
// multiplier table.
func RecomputeCapacity(capacity int32, oldLevel, newLevel int16) int32 {
	om := LevelMultiplier(oldLevel)
	nm := LevelMultiplier(newLevel)
	if om == 0 || nm == 0 {
		return capacity
	}
	return int32(float64(capacity) / om * nm)
}

// Building is one structure instance. Construction-only and debris-only
// data live in separate component stores gated by State, so they cannot be
// touched while irrelevant.
type Building struct {
	ID      ecs.EntityID
	OwnerID OwnerID

	// Top-left cell of the footprint plus tile extent.
	X, Y          int32
	Width, Height int32

	TemplateID int32
	Category   ZoneCategory
	Density    DensityTier

	State LifecycleState

	Level     int16
	MaxLevel  int16
	Capacity  int32
	Occupancy int32
	Health    uint8

	// Cost the structure was built for; demolition charges derive from it.
	ConstructionCost int64

	// Tick of the most recent lifecycle transition. Anchors the level
	// change cooldown and measures dwell time in Derelict.
	StateChangedTick int64
}

// ConstructionSite exists only while the building is Materializing.
type ConstructionSite struct {
	ElapsedTicks int64
	TotalTicks   int64
	Cost         int64
}

// Debris exists only while the building is Deconstructed: the placeholder
// awaiting timed or paid clearing. The footprint cells were already vacated
// when the debris was attached.
type Debris struct {
	ClearTimer    int64
	TemplateID    int32
	Width, Height int32
}

// GraceState tracks consecutive ticks without each utility independently.
// Created lazily on first Active evaluation, discarded when the building
// reaches Deconstructed. AbandonTimer counts down while Abandoned.
// DemandStress counts consecutive ticks of negative zone demand and feeds
// the downgrade check.
type GraceState struct {
	EnergyOut    int64
	FluidOut     int64
	TransportOut int64

	AbandonTimer int64
	DemandStress int64
}

// ResetServiceCounters zeroes the three utility grace counters.
func (g *GraceState) ResetServiceCounters() {
	g.EnergyOut = 0
	g.FluidOut = 0
	g.TransportOut = 0
}
