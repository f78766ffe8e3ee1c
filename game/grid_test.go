package game

import (
	"slices"
	"testing"
)

func TestGridCellRoundTrip(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	for _, c := range []Cell{{0, 0}, {5, 7}, {25, 25}, {49, 49}} {
		pos := g.CellToWorld(c)
		if pos.Y != WaypointHeight {
			t.Errorf("cell %v: expected height %f, got %f", c, WaypointHeight, pos.Y)
		}
		if got := g.WorldToCell(pos); got != c {
			t.Errorf("round trip of %v gave %v", c, got)
		}
	}
}

func TestGridWorldToCellFloorsWithOffset(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	cases := []struct {
		pos  Vec3
		want Cell
	}{
		{Vec3{0, 1.6, 0}, Cell{25, 25}},
		{Vec3{-0.01, 0, -0.01}, Cell{24, 24}},
		{Vec3{-25, 0, -25}, Cell{0, 0}},
		{Vec3{24.99, 0, 3.5}, Cell{49, 28}},
	}
	for _, tc := range cases {
		if got := g.WorldToCell(tc.pos); got != tc.want {
			t.Errorf("WorldToCell(%v) = %v, want %v", tc.pos, got, tc.want)
		}
	}
}

func TestGridWorldToCellClamps(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	if got := g.WorldToCell(Vec3{-40, 0, 60}); got != (Cell{0, GridSize - 1}) {
		t.Errorf("expected clamped cell, got %v", got)
	}
}

func TestGridMarkBlocked(t *testing.T) {
	g := NewGrid(10, 5, 1)
	c := Cell{3, 4}
	if g.IsBlocked(c) {
		t.Fatal("new grid should have no blocked cells")
	}
	g.MarkBlocked(c)
	if !g.IsBlocked(c) {
		t.Error("cell should be blocked after MarkBlocked")
	}

	// out of bounds is ignored, not a panic
	g.MarkBlocked(Cell{-1, 0})
	g.MarkBlocked(Cell{10, 10})
	if n := len(g.BlockedCells()); n != 1 {
		t.Errorf("expected 1 blocked cell, got %d", n)
	}
}

func TestGridSeedBlocksRingAndPillars(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	g.Seed(DefaultArena())

	last := GridSize - 1
	for i := 0; i < GridSize; i++ {
		for _, c := range []Cell{{i, 0}, {i, last}, {0, i}, {last, i}} {
			if !g.IsBlocked(c) {
				t.Fatalf("ring cell %v should be blocked", c)
			}
		}
	}

	// pillar at (-9.5, -9.5) projects onto cell (15, 15)
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			c := Cell{15 + dx, 15 + dz}
			if !g.IsBlocked(c) {
				t.Errorf("pillar neighborhood cell %v should be blocked", c)
			}
		}
	}
	if g.IsBlocked(Cell{13, 15}) {
		t.Error("cell outside the 3x3 neighborhood should be free")
	}
	if g.IsBlocked(g.WorldToCell(Vec3{0, 0, 0})) {
		t.Error("arena center should be free")
	}

	ring := 4*GridSize - 4
	pillars := 6 * 9
	if n := len(g.BlockedCells()); n != ring+pillars {
		t.Errorf("expected %d blocked cells, got %d", ring+pillars, n)
	}
}

func TestGridSeedIsIdempotent(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	g.Seed(DefaultArena())
	first := g.BlockedCells()
	g.Seed(DefaultArena())
	second := g.BlockedCells()
	if !slices.Equal(first, second) {
		t.Errorf("second seed changed the blocked set: %d vs %d cells", len(first), len(second))
	}
}

func TestGridWaypoints(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	pts := g.Waypoints(Path{{25, 25}, {26, 25}})
	if len(pts) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(pts))
	}
	if pts[0] != (Vec3{0.5, WaypointHeight, 0.5}) || pts[1] != (Vec3{1.5, WaypointHeight, 0.5}) {
		t.Errorf("unexpected waypoints %v", pts)
	}
	if g.Waypoints(nil) != nil {
		t.Error("empty path should give no waypoints")
	}
}
