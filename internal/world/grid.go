package world

import "github.com/gridhaven/server/internal/core/ecs"

// FootprintGrid is a dense 2D array mapping grid cell → occupying building
// id. Multi-tile rectangular footprints write every covered cell.
// Out-of-bounds reads behave as empty; out-of-bounds writes are rejected.
type FootprintGrid struct {
	width, height int32
	cells         []ecs.EntityID
}

func NewFootprintGrid(width, height int) *FootprintGrid {
	return &FootprintGrid{
		width:  int32(width),
		height: int32(height),
		cells:  make([]ecs.EntityID, width*height),
	}
}

func (g *FootprintGrid) Width() int32  { return g.width }
func (g *FootprintGrid) Height() int32 { return g.height }

func (g *FootprintGrid) inBounds(x, y int32) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// OccupantAt returns the building occupying (x,y), or 0 for an empty or
// out-of-bounds cell. Never panics.
func (g *FootprintGrid) OccupantAt(x, y int32) ecs.EntityID {
	if !g.inBounds(x, y) {
		return 0
	}
	return g.cells[y*g.width+x]
}

// CanPlace reports whether every cell of the w×h rectangle at (x,y) is in
// bounds and empty.
func (g *FootprintGrid) CanPlace(x, y, w, h int32) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if !g.inBounds(x, y) || !g.inBounds(x+w-1, y+h-1) {
		return false
	}
	for cy := y; cy < y+h; cy++ {
		row := cy * g.width
		for cx := x; cx < x+w; cx++ {
			if g.cells[row+cx] != 0 {
				return false
			}
		}
	}
	return true
}

// PlaceFootprint claims the rectangle for id. All-or-nothing: if any cell
// is occupied or out of bounds, nothing is written and false is returned.
func (g *FootprintGrid) PlaceFootprint(x, y, w, h int32, id ecs.EntityID) bool {
	if id == 0 || !g.CanPlace(x, y, w, h) {
		return false
	}
	for cy := y; cy < y+h; cy++ {
		row := cy * g.width
		for cx := x; cx < x+w; cx++ {
			g.cells[row+cx] = id
		}
	}
	return true
}

// ClearFootprint unconditionally zeroes the in-bounds cells of the rectangle.
func (g *FootprintGrid) ClearFootprint(x, y, w, h int32) {
	for cy := y; cy < y+h; cy++ {
		if cy < 0 || cy >= g.height {
			continue
		}
		row := cy * g.width
		for cx := x; cx < x+w; cx++ {
			if cx < 0 || cx >= g.width {
				continue
			}
			g.cells[row+cx] = 0
		}
	}
}
