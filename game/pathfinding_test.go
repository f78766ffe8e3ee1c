package game

import (
	"slices"
	"testing"
)

func checkPath(t *testing.T, g *Grid, p Path, start, goal Cell) {
	t.Helper()
	if len(p) == 0 {
		t.Fatalf("expected a path from %v to %v", start, goal)
	}
	if p[0] != start {
		t.Errorf("path starts at %v, want %v", p[0], start)
	}
	if p[len(p)-1] != goal {
		t.Errorf("path ends at %v, want %v", p[len(p)-1], goal)
	}
	for i := 1; i < len(p); i++ {
		if manhattan(p[i-1], p[i]) != 1 {
			t.Fatalf("step %d from %v to %v is not a single axis move", i, p[i-1], p[i])
		}
		if i < len(p)-1 && g.IsBlocked(p[i]) {
			t.Errorf("path crosses blocked cell %v", p[i])
		}
	}
}

func TestFindPathStraightLine(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	start, goal := Cell{0, 0}, Cell{5, 0}
	p := g.FindPath(start, goal)
	if len(p) != 6 {
		t.Fatalf("expected 6 cells, got %d: %v", len(p), p)
	}
	checkPath(t, g, p, start, goal)
	for i := 1; i < len(p); i++ {
		if p[i].X != p[i-1].X+1 || p[i].Z != 0 {
			t.Errorf("expected monotonically increasing x along z=0, got %v", p)
			break
		}
	}
}

func TestFindPathMatchesManhattanOnEmptyGrid(t *testing.T) {
	g := NewGrid(12, 6, 1)
	starts := []Cell{{0, 0}, {5, 7}, {11, 11}, {3, 10}}
	for _, start := range starts {
		for z := 0; z < 12; z++ {
			for x := 0; x < 12; x++ {
				goal := Cell{x, z}
				p := g.FindPath(start, goal)
				if len(p)-1 != manhattan(start, goal) {
					t.Fatalf("%v -> %v: path has %d steps, manhattan is %d", start, goal, len(p)-1, manhattan(start, goal))
				}
				checkPath(t, g, p, start, goal)
			}
		}
	}
}

func TestFindPathAroundObstacles(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	g.Seed(DefaultArena())

	start := g.WorldToCell(Vec3{-20, 1, -20})
	goal := g.WorldToCell(Vec3{0, 1.6, 0})
	p := g.FindPath(start, goal)
	checkPath(t, g, p, start, goal)
	if len(p)-1 != manhattan(start, goal) {
		t.Errorf("open diagonal route should still be optimal: %d steps, want %d", len(p)-1, manhattan(start, goal))
	}

	// a wall across the grid with a single gap forces a detour
	wall := NewGrid(10, 5, 1)
	for z := 0; z < 10; z++ {
		if z != 9 {
			wall.MarkBlocked(Cell{5, z})
		}
	}
	p = wall.FindPath(Cell{0, 0}, Cell{9, 0})
	checkPath(t, wall, p, Cell{0, 0}, Cell{9, 0})
	if len(p)-1 != 9+2*9 {
		t.Errorf("expected detour of %d steps, got %d", 9+2*9, len(p)-1)
	}
}

func TestFindPathEnclosedGoal(t *testing.T) {
	g := NewGrid(20, 10, 1)
	goal := Cell{10, 10}
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dz != 0 {
				g.MarkBlocked(Cell{goal.X + dx, goal.Z + dz})
			}
		}
	}
	if p := g.FindPath(Cell{0, 0}, goal); p != nil {
		t.Errorf("expected no path to enclosed goal, got %v", p)
	}
}

func TestFindPathStartEqualsGoal(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	c := Cell{7, 7}
	p := g.FindPath(c, c)
	if len(p) != 1 || p[0] != c {
		t.Errorf("expected single-cell path, got %v", p)
	}
}

func TestFindPathBlockedEndpoints(t *testing.T) {
	g := NewGrid(10, 5, 1)
	start, goal := Cell{2, 2}, Cell{6, 2}

	g.MarkBlocked(start)
	p := g.FindPath(start, goal)
	checkPath(t, g, p, start, goal)

	g.MarkBlocked(goal)
	if p := g.FindPath(start, goal); p != nil {
		t.Errorf("blocked goal should be unreachable, got %v", p)
	}
	if p := g.FindPath(goal, goal); len(p) != 1 {
		t.Errorf("blocked start equal to goal should still give a single cell, got %v", p)
	}
}

func TestFindPathOutOfBounds(t *testing.T) {
	g := NewGrid(10, 5, 1)
	if p := g.FindPath(Cell{-1, 0}, Cell{3, 3}); p != nil {
		t.Errorf("expected nil for out-of-bounds start, got %v", p)
	}
	if p := g.FindPath(Cell{0, 0}, Cell{10, 3}); p != nil {
		t.Errorf("expected nil for out-of-bounds goal, got %v", p)
	}
}

func TestFindPathDeterministic(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	g.Seed(DefaultArena())
	a := g.FindPath(Cell{3, 40}, Cell{44, 6})
	b := g.FindPath(Cell{3, 40}, Cell{44, 6})
	if !slices.Equal(a, b) {
		t.Error("identical queries should give identical paths")
	}
}
