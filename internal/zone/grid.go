// Package zone is the reference zone layer: a dense designation grid with
// per-owner category demand and a per-tile land value. The simulation core
// consumes it only through the world.ZoneLayer interface.
package zone

import (
	"sort"

	"github.com/gridhaven/server/internal/world"
)

type cell struct {
	present   bool
	tile      world.ZoneTile
	landValue int32
}

type demandKey struct {
	owner world.OwnerID
	cat   world.ZoneCategory
}

// Grid implements world.ZoneLayer. Simulation-loop goroutine only.
type Grid struct {
	width, height int32
	cells         []cell
	demand        map[demandKey]int32
	owners        map[world.OwnerID]int
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  int32(width),
		height: int32(height),
		cells:  make([]cell, width*height),
		demand: make(map[demandKey]int32),
		owners: make(map[world.OwnerID]int),
	}
}

func (g *Grid) at(x, y int32) *cell {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// Designate marks a rectangle as a zone of the given category and density,
// owned by owner, in the Designated state. Already-occupied tiles keep
// their state.
func (g *Grid) Designate(x, y, w, h int32, cat world.ZoneCategory, density world.DensityTier, owner world.OwnerID) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			c := g.at(cx, cy)
			if c == nil {
				continue
			}
			if c.present {
				if c.tile.State == world.ZoneOccupied {
					continue
				}
				// Re-designation replaces the previous claim.
				g.owners[c.tile.Owner]--
			}
			c.present = true
			c.tile = world.ZoneTile{
				Category: cat,
				Density:  density,
				State:    world.ZoneDesignated,
				Owner:    owner,
			}
			g.owners[owner]++
		}
	}
}

// ZoneAt returns the tile at (x,y) and whether a zone exists there.
func (g *Grid) ZoneAt(x, y int32) (world.ZoneTile, bool) {
	c := g.at(x, y)
	if c == nil || !c.present {
		return world.ZoneTile{}, false
	}
	return c.tile, true
}

// MarkOccupied flips covered designated tiles to Occupied.
func (g *Grid) MarkOccupied(x, y, w, h int32) {
	g.setState(x, y, w, h, world.ZoneOccupied)
}

// MarkVacated returns covered tiles to Designated so they can host a new
// spawn.
func (g *Grid) MarkVacated(x, y, w, h int32) {
	g.setState(x, y, w, h, world.ZoneDesignated)
}

func (g *Grid) setState(x, y, w, h int32, st world.ZoneState) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			c := g.at(cx, cy)
			if c == nil || !c.present {
				continue
			}
			c.tile.State = st
		}
	}
}

// SetDemand sets the owner's demand for a category. Negative demand feeds
// the downgrade path.
func (g *Grid) SetDemand(owner world.OwnerID, cat world.ZoneCategory, demand int32) {
	g.demand[demandKey{owner, cat}] = demand
}

func (g *Grid) Demand(owner world.OwnerID, cat world.ZoneCategory) int32 {
	return g.demand[demandKey{owner, cat}]
}

// SetLandValue assigns a land value to every tile in the rectangle.
// Desirability reads it back directly.
func (g *Grid) SetLandValue(x, y, w, h int32, value int32) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			if c := g.at(cx, cy); c != nil {
				c.landValue = value
			}
		}
	}
}

func (g *Grid) Desirability(x, y int32) int32 {
	c := g.at(x, y)
	if c == nil {
		return 0
	}
	return c.landValue
}

// Owners returns the overseers with designated territory, sorted for a
// stable scan order.
func (g *Grid) Owners() []world.OwnerID {
	out := make([]world.OwnerID, 0, len(g.owners))
	for o, n := range g.owners {
		if n > 0 {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
