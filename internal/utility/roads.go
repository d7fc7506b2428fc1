package utility

// RoadGrid is a dense boolean grid of road tiles. Access checks scan a
// square of radius maxDistance around the position; no pathfinding.
// Implements world.TransportProvider and world.TerrainProvider (road tiles
// are not buildable).
type RoadGrid struct {
	width, height int32
	roads         []bool
}

func NewRoadGrid(width, height int) *RoadGrid {
	return &RoadGrid{
		width:  int32(width),
		height: int32(height),
		roads:  make([]bool, width*height),
	}
}

func (r *RoadGrid) inBounds(x, y int32) bool {
	return x >= 0 && y >= 0 && x < r.width && y < r.height
}

// SetRoad marks or clears a road tile.
func (r *RoadGrid) SetRoad(x, y int32, road bool) {
	if !r.inBounds(x, y) {
		return
	}
	r.roads[y*r.width+x] = road
}

func (r *RoadGrid) IsRoad(x, y int32) bool {
	if !r.inBounds(x, y) {
		return false
	}
	return r.roads[y*r.width+x]
}

// IsRoadAccessibleAt reports whether any road tile lies within maxDistance
// (Chebyshev) of the position.
func (r *RoadGrid) IsRoadAccessibleAt(x, y int32, maxDistance int) bool {
	d := int32(maxDistance)
	for cy := y - d; cy <= y+d; cy++ {
		for cx := x - d; cx <= x+d; cx++ {
			if r.IsRoad(cx, cy) {
				return true
			}
		}
	}
	return false
}

// Buildable reports whether the rectangle is in bounds and free of roads.
func (r *RoadGrid) Buildable(x, y, w, h int32) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if !r.inBounds(x, y) || !r.inBounds(x+w-1, y+h-1) {
		return false
	}
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			if r.roads[cy*r.width+cx] {
				return false
			}
		}
	}
	return true
}
