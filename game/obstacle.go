package game

import (
	"fmt"
	"math"
)

const (
	ArenaHalfSize   = 25.0
	WallHeight      = 5.0
	WallThickness   = 1.0
	PillarHalfWidth = 1.0
	PillarHeight    = 4.0
)

// Obstacle is a static axis-aligned box. Boundary marks the arena walls,
// which the grid blocks as its outer ring instead of by projection.
type Obstacle struct {
	ID          string `json:"id"`
	Center      Vec3   `json:"center"`
	HalfExtents Vec3   `json:"half"`
	Boundary    bool   `json:"boundary,omitempty"`
}

// DefaultArena returns the four boundary walls and the interior pillars.
// Pillars sit on cell centers so that the 3×3 blocked neighborhood leaves
// a full cell of clearance around each face.
func DefaultArena() []Obstacle {
	half := ArenaHalfSize
	wallY := WallHeight / 2
	obstacles := []Obstacle{
		{ID: "wall-n", Center: Vec3{0, wallY, -half}, HalfExtents: Vec3{half, wallY, WallThickness / 2}, Boundary: true},
		{ID: "wall-s", Center: Vec3{0, wallY, half}, HalfExtents: Vec3{half, wallY, WallThickness / 2}, Boundary: true},
		{ID: "wall-e", Center: Vec3{half, wallY, 0}, HalfExtents: Vec3{WallThickness / 2, wallY, half}, Boundary: true},
		{ID: "wall-w", Center: Vec3{-half, wallY, 0}, HalfExtents: Vec3{WallThickness / 2, wallY, half}, Boundary: true},
	}
	pillars := []Vec3{
		{-9.5, 0, -9.5},
		{9.5, 0, -9.5},
		{-9.5, 0, 9.5},
		{9.5, 0, 9.5},
		{-15.5, 0, 0.5},
		{15.5, 0, 0.5},
	}
	for i, p := range pillars {
		obstacles = append(obstacles, Obstacle{
			ID:          fmt.Sprintf("pillar-%d", i+1),
			Center:      Vec3{p.X, PillarHeight / 2, p.Z},
			HalfExtents: Vec3{PillarHalfWidth, PillarHeight / 2, PillarHalfWidth},
		})
	}
	return obstacles
}

// RayCaster answers ray queries against static geometry. dir must be a
// unit vector; the returned distance is along dir.
type RayCaster interface {
	CastRay(origin, dir Vec3) (float64, bool)
}

// BoxSet is the default RayCaster over a fixed obstacle list
type BoxSet []Obstacle

// CastRay returns the distance to the nearest box face the ray enters.
// Rays starting inside a box do not hit that box.
func (bs BoxSet) CastRay(origin, dir Vec3) (float64, bool) {
	best := math.Inf(1)
	hit := false
	for _, obs := range bs {
		if t, ok := obs.intersect(origin, dir); ok && t < best {
			best = t
			hit = true
		}
	}
	return best, hit
}

// intersect is the slab test for a ray against the obstacle's box
func (o Obstacle) intersect(origin, dir Vec3) (float64, bool) {
	lo := o.Center.Sub(o.HalfExtents)
	hi := o.Center.Add(o.HalfExtents)
	tNear := math.Inf(-1)
	tFar := math.Inf(1)

	axes := [3][4]float64{
		{origin.X, dir.X, lo.X, hi.X},
		{origin.Y, dir.Y, lo.Y, hi.Y},
		{origin.Z, dir.Z, lo.Z, hi.Z},
	}
	for _, a := range axes {
		org, d, min, max := a[0], a[1], a[2], a[3]
		if d == 0 {
			if org < min || org > max {
				return 0, false
			}
			continue
		}
		t1 := (min - org) / d
		t2 := (max - org) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return 0, false
		}
	}
	if tFar < 0 || tNear < 0 {
		return 0, false
	}
	return tNear, true
}
