// pkg/physics/grid.go
package physics

import "github.com/EngoEngine/ecs"

// Entity is anything the broad phase can index: a stable identity plus a
// bounding circle. Ships and projectiles both qualify.
type Entity interface {
	ecs.Identifier
	Body() Circle
}

type cellKey struct {
	X int
	Y int
}

// SpatialGrid is a uniform-grid spatial hash used as the broad phase for
// collision queries. Cells are keyed by floor-divided integer coordinates
// so the battle area needs no fixed bounds. The grid holds non-owning
// references and is rebuilt from the live entity set every tick.
type SpatialGrid struct {
	cellSize float64
	cells    map[cellKey][]Entity
}

// NewSpatialGrid creates a grid with the given cell size. The cell size
// should be at least as large as the biggest collision radius in play.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]Entity),
	}
}

// Clear empties all buckets while keeping their allocated capacity.
func (g *SpatialGrid) Clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

func (g *SpatialGrid) cellOf(x, y float64) cellKey {
	return cellKey{
		X: int(fastFloor(x / g.cellSize)),
		Y: int(fastFloor(y / g.cellSize)),
	}
}

// Insert places the entity into every cell its bounding circle touches.
func (g *SpatialGrid) Insert(e Entity) {
	body := e.Body()
	min := g.cellOf(body.Center.X-body.Radius, body.Center.Y-body.Radius)
	max := g.cellOf(body.Center.X+body.Radius, body.Center.Y+body.Radius)

	for cy := min.Y; cy <= max.Y; cy++ {
		for cx := min.X; cx <= max.X; cx++ {
			k := cellKey{X: cx, Y: cy}
			g.cells[k] = append(g.cells[k], e)
		}
	}
}

// QueryRadius returns the de-duplicated set of entities in cells
// overlapping a disc of the given radius around point. The result is the
// union of the tested cells, not an exact distance filter; callers must
// distance-check candidates themselves. Cells are visited row-major over
// the covered range and duplicates keep their first-seen position, so the
// order is deterministic for a fixed insertion order.
func (g *SpatialGrid) QueryRadius(point Vec, radius float64) []Entity {
	min := g.cellOf(point.X-radius, point.Y-radius)
	max := g.cellOf(point.X+radius, point.Y+radius)

	var result []Entity
	seen := make(map[uint64]struct{})

	for cy := min.Y; cy <= max.Y; cy++ {
		for cx := min.X; cx <= max.X; cx++ {
			for _, e := range g.cells[cellKey{X: cx, Y: cy}] {
				if _, dup := seen[e.ID()]; dup {
					continue
				}
				seen[e.ID()] = struct{}{}
				result = append(result, e)
			}
		}
	}
	return result
}

// fastFloor avoids the truncation-toward-zero bias of a plain int
// conversion for negative coordinates.
func fastFloor(v float64) float64 {
	i := float64(int(v))
	if v < i {
		return i - 1
	}
	return i
}
