package game

import (
	"time"

	bt "github.com/joeycumines/go-behaviortree"
)

const (
	EnemyMaxHealth    = 50
	EnemyStep         = 0.02 // units per tick
	EnemyRadius       = 0.5
	EnemyHeight       = 1.0
	EnemySpawnSpan    = 40.0 // spawn square side, centered on the arena
	WaypointTolerance = 0.1
)

// EnemyState is the navigation state of an enemy
type EnemyState int

const (
	EnemySeekingPath EnemyState = iota
	EnemyFollowingPath
)

func (s EnemyState) String() string {
	if s == EnemyFollowingPath {
		return "following"
	}
	return "seeking"
}

// Enemy is an AI-controlled opponent
type Enemy struct {
	ID          string
	Pos         Vec3
	Health      int
	State       EnemyState
	Path        Path
	Waypoints   []Vec3
	WaypointIdx int
	LastPathAt  time.Duration

	pathed  bool
	removed bool
	brain   bt.Node
}

// NewEnemy creates a full-health enemy at pos
func NewEnemy(id string, pos Vec3) *Enemy {
	return &Enemy{
		ID:     id,
		Pos:    pos,
		Health: EnemyMaxHealth,
	}
}

// TakeDamage reduces health and returns true on the killing hit
func (e *Enemy) TakeDamage(dmg int) bool {
	if e.Dead() {
		return false
	}
	e.Health -= dmg
	return e.Dead()
}

// Dead reports whether the enemy is out of health
func (e *Enemy) Dead() bool {
	return e.Health <= 0
}

// NeedsPath reports whether the route should be recomputed: never computed,
// older than interval, or walked to its end
func (e *Enemy) NeedsPath(now, interval time.Duration) bool {
	if !e.pathed {
		return true
	}
	if now-e.LastPathAt > interval {
		return true
	}
	return len(e.Waypoints) > 0 && e.WaypointIdx >= len(e.Waypoints)
}

// SetPath replaces the current route wholesale
func (e *Enemy) SetPath(g *Grid, p Path, now time.Duration) {
	e.Path = p
	e.Waypoints = g.Waypoints(p)
	e.WaypointIdx = 0
	e.LastPathAt = now
	e.pathed = true
}

// HasWaypoint reports whether there is a waypoint left to walk to
func (e *Enemy) HasWaypoint() bool {
	return e.WaypointIdx < len(e.Waypoints)
}

// Advance steps toward the current waypoint unless the prober vetoes it,
// and moves on to the next waypoint once within tolerance
func (e *Enemy) Advance(prober Prober) {
	if !e.HasWaypoint() {
		return
	}
	to := e.Waypoints[e.WaypointIdx].Sub(e.Pos)
	if to.Len() < WaypointTolerance {
		e.WaypointIdx++
		return
	}
	step := to.Normalize().Scale(EnemyStep)
	if prober.Blocked(e.Pos, step, EnemyRadius) {
		return
	}
	e.Pos = e.Pos.Add(step)
}
