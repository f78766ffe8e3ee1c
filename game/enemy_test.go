package game

import (
	"testing"
	"time"
)

func TestEnemyTakeDamage(t *testing.T) {
	e := NewEnemy("e", Vec3{})
	if e.Health != EnemyMaxHealth {
		t.Fatalf("expected %d health, got %d", EnemyMaxHealth, e.Health)
	}
	if e.TakeDamage(PlayerBulletDamage) {
		t.Error("first hit should not kill")
	}
	if !e.TakeDamage(PlayerBulletDamage) {
		t.Error("second hit should kill")
	}
	if !e.Dead() {
		t.Error("enemy should be dead")
	}
	if e.TakeDamage(PlayerBulletDamage) {
		t.Error("kill should be reported once")
	}
}

func TestEnemyNeedsPath(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	e := NewEnemy("e", Vec3{0.5, EnemyHeight, 0.5})

	if !e.NeedsPath(0, time.Second) {
		t.Error("fresh enemy should need a path")
	}

	e.SetPath(g, Path{{25, 25}, {26, 25}}, 0)
	if e.NeedsPath(time.Second, time.Second) {
		t.Error("path exactly one interval old should still be used")
	}
	if !e.NeedsPath(time.Second+TickDuration, time.Second) {
		t.Error("path older than the interval should be recomputed")
	}

	e.WaypointIdx = len(e.Waypoints)
	if !e.NeedsPath(0, time.Second) {
		t.Error("exhausted path should be recomputed")
	}
}

func TestEnemyEmptyPathStalls(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	e := NewEnemy("e", Vec3{0.5, EnemyHeight, 0.5})
	e.SetPath(g, nil, 0)

	if e.NeedsPath(time.Second/2, time.Second) {
		t.Error("empty path should wait for the next scheduled recompute")
	}
	before := e.Pos
	e.Advance(Prober{})
	if e.Pos != before {
		t.Errorf("enemy without waypoints should not move, got %v", e.Pos)
	}
}

func TestEnemyAdvanceFollowsWaypoints(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	e := NewEnemy("e", Vec3{0.5, EnemyHeight, 0.5})
	e.SetPath(g, Path{{25, 25}, {26, 25}}, 0)

	// already on the first waypoint
	e.Advance(Prober{})
	if e.WaypointIdx != 1 || e.Pos != (Vec3{0.5, EnemyHeight, 0.5}) {
		t.Fatalf("expected to skip reached waypoint without moving, idx=%d pos=%v", e.WaypointIdx, e.Pos)
	}

	e.Advance(Prober{})
	if !approx(e.Pos.X, 0.5+EnemyStep) {
		t.Errorf("expected a %f step, got x=%f", EnemyStep, e.Pos.X)
	}

	for i := 0; i < 100 && e.HasWaypoint(); i++ {
		e.Advance(Prober{})
	}
	if e.HasWaypoint() {
		t.Fatal("expected to finish the path")
	}
	if d := Distance(e.Pos, Vec3{1.5, EnemyHeight, 0.5}); d >= WaypointTolerance {
		t.Errorf("expected to end within tolerance of the last waypoint, off by %f", d)
	}
}

func TestEnemyAdvanceBlocked(t *testing.T) {
	g := NewGrid(GridSize, GridOffset, WaypointHeight)
	e := NewEnemy("e", Vec3{0.5, EnemyHeight, 0.5})
	e.SetPath(g, Path{{26, 25}}, 0)

	wall := Prober{Rays: BoxSet{{ID: "wall", Center: Vec3{1.2, 1, 0.5}, HalfExtents: Vec3{0.3, 1, 1}}}}
	e.Advance(wall)
	if e.Pos != (Vec3{0.5, EnemyHeight, 0.5}) {
		t.Errorf("step into the wall should be vetoed, got %v", e.Pos)
	}
	if e.WaypointIdx != 0 {
		t.Error("waypoint index should not advance while blocked")
	}
}
