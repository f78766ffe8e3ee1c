package game

import (
	"errors"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	TickRate     = 60
	TickDuration = time.Second / TickRate

	spawnAttempts       = 64
	spawnPlayerDistance = 3.0
)

var ErrAlreadyStarted = errors.New("match already started")

// World owns all state of a single match and advances it one tick at a
// time. It is not safe for concurrent use.
type World struct {
	cfg       Config
	grid      *Grid
	obstacles []Obstacle
	prober    Prober
	scene     Scene
	rng       *rand.Rand

	Player      *Player
	Enemies     []*Enemy
	Projectiles []*Projectile
	Explosions  []*Explosion

	status  MatchStatus
	outcome string
	tick    uint64
	now     time.Duration
	ids     uint64
	events  []Event
	stats   Stats
}

// NewWorld builds the arena for cfg: obstacles, their proxies and the
// seeded grid. Enemies are spawned by Start. A nil scene is allowed.
func NewWorld(cfg Config, scene Scene) *World {
	if scene == nil {
		scene = nopScene{}
	}
	obstacles := cfg.Obstacles
	if obstacles == nil {
		obstacles = DefaultArena()
	}
	obstacles = slices.Clone(obstacles)
	if cfg.RepathInterval <= 0 {
		cfg.RepathInterval = time.Second
	}

	grid := NewGrid(GridSize, GridOffset, WaypointHeight)
	grid.Seed(obstacles)

	w := &World{
		cfg:       cfg,
		grid:      grid,
		obstacles: obstacles,
		prober:    Prober{Rays: BoxSet(obstacles)},
		scene:     scene,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		Player:    NewPlayer(DefaultPlayerName),
	}
	for _, obs := range obstacles {
		scene.AddProxy(obs.ID, ProxyObstacle, obs.Center)
	}
	return w
}

// Start begins the match under the given display name
func (w *World) Start(name string) error {
	if w.status != StatusNotStarted {
		return ErrAlreadyStarted
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlayerName
	}
	w.Player.Name = name
	for i := 0; i < w.cfg.EnemyCount; i++ {
		w.AddEnemy(w.spawnPoint())
	}
	w.status = StatusRunning
	return nil
}

// AddEnemy puts an enemy on the roster at pos
func (w *World) AddEnemy(pos Vec3) *Enemy {
	e := NewEnemy(w.nextID("enemy"), pos)
	e.brain = w.newBrain(e)
	w.Enemies = append(w.Enemies, e)
	w.scene.AddProxy(e.ID, ProxyEnemy, e.Pos)
	return e
}

// spawnPoint picks a random interior position away from blocked cells and
// the player. It gives up after spawnAttempts and keeps the last sample.
func (w *World) spawnPoint() Vec3 {
	var pos Vec3
	for i := 0; i < spawnAttempts; i++ {
		pos = Vec3{
			X: (w.rng.Float64() - 0.5) * EnemySpawnSpan,
			Y: EnemyHeight,
			Z: (w.rng.Float64() - 0.5) * EnemySpawnSpan,
		}
		if w.grid.IsBlocked(w.grid.WorldToCell(pos)) {
			continue
		}
		planar := Vec3{X: pos.X - w.Player.Pos.X, Z: pos.Z - w.Player.Pos.Z}
		if planar.Len() < spawnPlayerDistance {
			continue
		}
		break
	}
	return pos
}

// Step runs one tick: player, enemies, then combat. The match can end
// only between phases; once it has ended Step does nothing.
func (w *World) Step(in Input) {
	if w.status != StatusRunning {
		return
	}
	w.tick++
	w.now += TickDuration
	w.stats.Ticks = w.tick

	w.updatePlayer(in)

	w.updateEnemies()
	if w.status != StatusRunning {
		return
	}

	w.resolveCombat()
	if w.status != StatusRunning {
		return
	}

	w.updateEffects()
}

func (w *World) updatePlayer(in Input) {
	p := w.Player
	p.Look(in.LookX, in.LookY)
	p.Move(in, w.prober)
	if in.Fire {
		w.spawnProjectile(NewPlayerBullet(w.nextID("bullet"), p.Pos, p.Facing()))
		w.stats.ShotsFired++
		w.emit(Event{Kind: EventShot, Pos: p.Pos})
	}
}

func (w *World) updateEnemies() {
	for _, e := range w.Enemies {
		if e.Dead() {
			e.removed = true
			continue
		}
		if _, err := e.brain.Tick(); err != nil {
			// leaves never fail with an error; stop this enemy for the tick
			continue
		}
		w.scene.MoveProxy(e.ID, e.Pos)
	}
	w.Enemies = slices.DeleteFunc(w.Enemies, func(e *Enemy) bool {
		if e.removed {
			w.scene.RemoveProxy(e.ID)
		}
		return e.removed
	})
	if len(w.Enemies) == 0 {
		w.finish(StatusWon)
	}
}

func (w *World) updateEffects() {
	for _, ex := range w.Explosions {
		ex.Update()
		for _, pt := range ex.Particles {
			w.scene.MoveProxy(pt.ID, pt.Pos)
		}
	}
	w.Explosions = slices.DeleteFunc(w.Explosions, func(ex *Explosion) bool {
		if !ex.Expired(w.now) {
			return false
		}
		for _, pt := range ex.Particles {
			w.scene.RemoveProxy(pt.ID)
		}
		return true
	})
}

func (w *World) spawnProjectile(p *Projectile) {
	w.Projectiles = append(w.Projectiles, p)
	kind := ProxyBullet
	if p.IsBomb() {
		kind = ProxyBomb
	}
	w.scene.AddProxy(p.ID, kind, p.Pos)
}

func (w *World) spawnExplosion(center Vec3, radius float64) {
	ex := NewExplosion(w.nextID("boom"), center, radius, w.now, w.rng)
	w.Explosions = append(w.Explosions, ex)
	for _, pt := range ex.Particles {
		w.scene.AddProxy(pt.ID, ProxyParticle, pt.Pos)
	}
	w.emit(Event{Kind: EventExplosion, ID: ex.ID, Pos: center, Radius: radius})
}

// finish moves the match to a terminal status exactly once
func (w *World) finish(status MatchStatus) {
	if w.status != StatusRunning {
		return
	}
	w.status = status
	switch status {
	case StatusWon:
		w.outcome = WinMessage(w.Player.Name)
		w.emit(Event{Kind: EventWon})
	case StatusLost:
		w.outcome = LossMessage
		w.emit(Event{Kind: EventLost})
	}
}

func (w *World) emit(ev Event) {
	ev.Tick = w.tick
	w.events = append(w.events, ev)
}

func (w *World) nextID(prefix string) string {
	w.ids++
	return prefix + "-" + strconv.FormatUint(w.ids, 10)
}

// DrainEvents returns and clears the events queued since the last call
func (w *World) DrainEvents() []Event {
	ev := w.events
	w.events = nil
	return ev
}

// Status returns the current match status
func (w *World) Status() MatchStatus { return w.status }

// GameOver reports whether the game-over panel should be shown
func (w *World) GameOver() bool { return w.status.Terminal() }

// Outcome returns the win/lose message, empty while the match runs
func (w *World) Outcome() string { return w.outcome }

// Health returns the player's current health
func (w *World) Health() int { return w.Player.Health }

// MaxHealth returns the player's maximum health
func (w *World) MaxHealth() int { return w.Player.MaxHealth }

// Tick returns the number of ticks simulated so far
func (w *World) Tick() uint64 { return w.tick }

// Now returns simulated time since the match started
func (w *World) Now() time.Duration { return w.now }

// Stats returns the running tallies for this match
func (w *World) Stats() Stats { return w.stats }

// Grid returns the navigation grid
func (w *World) Grid() *Grid { return w.grid }

// Obstacles returns a copy of the static obstacle list
func (w *World) Obstacles() []Obstacle { return slices.Clone(w.obstacles) }
