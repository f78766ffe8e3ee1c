package game

import "math"

const (
	GridSize       = 50
	GridOffset     = 25.0 // maps world [-25, 25) onto [0, GridSize)
	WaypointHeight = 1.0
)

// Cell is a grid coordinate on the arena floor
type Cell struct {
	X, Z int
}

// Grid discretizes the arena floor and tracks cells blocked by static
// obstacles. Blocked membership never changes once a match is running.
type Grid struct {
	size    int
	offset  float64
	height  float64
	blocked []bool
}

// NewGrid creates an empty grid of size×size cells
func NewGrid(size int, offset, height float64) *Grid {
	if size <= 0 {
		size = 1
	}
	return &Grid{
		size:    size,
		offset:  offset,
		height:  height,
		blocked: make([]bool, size*size),
	}
}

// Size returns the number of cells along each axis
func (g *Grid) Size() int { return g.size }

// InBounds reports whether c lies inside the grid
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.Z >= 0 && c.X < g.size && c.Z < g.size
}

func (g *Grid) index(c Cell) int {
	return c.Z*g.size + c.X
}

// IsBlocked reports whether c is blocked. Cells outside the grid are not
// tracked and report false; the pathfinder bounds-checks separately.
func (g *Grid) IsBlocked(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.blocked[g.index(c)]
}

// MarkBlocked marks c as blocked. Out-of-bounds cells are ignored.
func (g *Grid) MarkBlocked(c Cell) {
	if !g.InBounds(c) {
		return
	}
	g.blocked[g.index(c)] = true
}

// WorldToCell floors pos+offset on each planar axis, clamped into the grid
// so that positions pressed against the boundary still resolve to a cell.
func (g *Grid) WorldToCell(pos Vec3) Cell {
	x := int(math.Floor(pos.X + g.offset))
	z := int(math.Floor(pos.Z + g.offset))
	return Cell{X: clampInt(x, 0, g.size-1), Z: clampInt(z, 0, g.size-1)}
}

// CellToWorld returns the center of c at the grid's fixed height
func (g *Grid) CellToWorld(c Cell) Vec3 {
	return Vec3{
		X: float64(c.X) - g.offset + 0.5,
		Y: g.height,
		Z: float64(c.Z) - g.offset + 0.5,
	}
}

// Seed blocks the outer ring of cells and a 3×3 block around the projected
// cell of every interior obstacle. Calling it again is a no-op.
func (g *Grid) Seed(obstacles []Obstacle) {
	last := g.size - 1
	for i := 0; i < g.size; i++ {
		g.MarkBlocked(Cell{X: i, Z: 0})
		g.MarkBlocked(Cell{X: i, Z: last})
		g.MarkBlocked(Cell{X: 0, Z: i})
		g.MarkBlocked(Cell{X: last, Z: i})
	}
	for _, obs := range obstacles {
		if obs.Boundary {
			continue
		}
		center := g.WorldToCell(obs.Center)
		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				g.MarkBlocked(Cell{X: center.X + dx, Z: center.Z + dz})
			}
		}
	}
}

// BlockedCells returns every blocked cell in row-major order
func (g *Grid) BlockedCells() []Cell {
	var cells []Cell
	for i, b := range g.blocked {
		if b {
			cells = append(cells, Cell{X: i % g.size, Z: i / g.size})
		}
	}
	return cells
}

// Waypoints converts a path to world-space cell centers
func (g *Grid) Waypoints(p Path) []Vec3 {
	if len(p) == 0 {
		return nil
	}
	pts := make([]Vec3, len(p))
	for i, c := range p {
		pts[i] = g.CellToWorld(c)
	}
	return pts
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
