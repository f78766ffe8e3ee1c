package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"arena-server/game"
)

const (
	BroadcastRate  = 30 // state broadcasts per second
	BroadcastEvery = game.TickRate / BroadcastRate
)

// Broadcaster receives the traffic of one attached client
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Match runs one game.World on its own ticker and relays it to the
// attached clients. It is the world's Scene: proxy changes become
// spawn/despawn messages. The world only advances while a player client
// is attached; watchers receive traffic but never unpause it.
type Match struct {
	ID string

	mu        sync.Mutex
	world     *game.World
	pending   game.Input
	clients   map[string]Broadcaster
	watchers  map[string]bool
	db        *DB
	analytics *Analytics
	stopped   bool
	stop      chan struct{}
	recorded  bool
	idleSince time.Time
}

// NewMatch builds the arena for a new match; db and analytics may be nil
func NewMatch(id string, cfg game.Config, db *DB, analytics *Analytics) *Match {
	m := &Match{
		ID:        id,
		clients:   make(map[string]Broadcaster),
		watchers:  make(map[string]bool),
		db:        db,
		analytics: analytics,
		stop:      make(chan struct{}),
		idleSince: time.Now(),
	}
	m.world = game.NewWorld(cfg, m)
	return m
}

// Run starts the tick loop
func (m *Match) Run() {
	ticker := time.NewTicker(game.TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.update()
		case <-m.stop:
			return
		}
	}
}

// Stop terminates the tick loop
func (m *Match) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Match) stopLocked() {
	if !m.stopped {
		m.stopped = true
		close(m.stop)
	}
}

// Close ends the match for good. A match that is still being played is
// recorded as abandoned.
func (m *Match) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.world.Status() == game.StatusRunning {
		m.recordResult(OutcomeAbandoned)
		m.analytics.Track(EvtMatchEnd, m.ID, m.world.Tick(), fmt.Sprintf(`{"outcome":%q}`, OutcomeAbandoned))
		m.broadcastMsg(Envelope{T: MsgOver, Data: OverMsg{Msg: "Match abandoned"}})
	}
	m.stopLocked()
}

// Start begins play under the given display name
func (m *Match) Start(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.world.Start(name); err != nil {
		return fmt.Errorf("match %s: %w", m.ID, err)
	}
	log.Printf("match %s started by %q", m.ID, m.world.Player.Name)
	m.analytics.Track(EvtMatchStart, m.ID, 0, "")
	return nil
}

// PlayerName returns the display name the match was started with
func (m *Match) PlayerName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.world.Player.Name
}

// Status returns the match status
func (m *Match) Status() game.MatchStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.world.Status()
}

// Over returns the final outcome once the match has ended
func (m *Match) Over() (OverMsg, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.world.GameOver() {
		return OverMsg{}, false
	}
	return OverMsg{Msg: m.world.Outcome(), Won: m.world.Status() == game.StatusWon}, true
}

// Obstacles returns the static arena geometry
func (m *Match) Obstacles() []game.Obstacle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.world.Obstacles()
}

// Attach starts relaying match traffic to the playing client
func (m *Match) Attach(clientID string, b Broadcaster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[clientID] = b
	delete(m.watchers, clientID)
	m.idleSince = time.Time{}
}

// Watch starts relaying match traffic to a read-only client
func (m *Match) Watch(clientID string, b Broadcaster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[clientID] = b
	m.watchers[clientID] = true
}

// Detach stops relaying to a client and returns how many players remain.
// With no player left the match pauses and held input is dropped.
func (m *Match) Detach(clientID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, clientID)
	delete(m.watchers, clientID)
	n := m.players()
	if n == 0 {
		m.pending = game.Input{}
		if m.idleSince.IsZero() {
			m.idleSince = time.Now()
		}
	}
	return n
}

func (m *Match) players() int {
	return len(m.clients) - len(m.watchers)
}

// ClientCount returns the number of attached clients
func (m *Match) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// IdleFor reports how long the match has had no player attached
func (m *Match) IdleFor(now time.Time) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.players() > 0 || m.idleSince.IsZero() {
		return 0
	}
	return now.Sub(m.idleSince)
}

// HandleInput merges client input into the next tick's input
func (m *Match) HandleInput(in InputMsg) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gi := in.toGame()
	m.pending.Forward = gi.Forward
	m.pending.Back = gi.Back
	m.pending.Left = gi.Left
	m.pending.Right = gi.Right
	m.pending.Jump = gi.Jump
	m.pending.LookX += gi.LookX
	m.pending.LookY += gi.LookY
	m.pending.Fire = m.pending.Fire || gi.Fire
}

// update runs one game tick; a match without a player is paused
func (m *Match) update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.world.Status() != game.StatusRunning || m.players() == 0 {
		return
	}
	m.world.Step(m.pending)
	m.pending.LookX, m.pending.LookY, m.pending.Fire = 0, 0, false

	m.forwardEvents(m.world.DrainEvents())

	if m.world.GameOver() {
		m.broadcastState()
		m.broadcastMsg(Envelope{T: MsgOver, Data: OverMsg{
			Msg: m.world.Outcome(),
			Won: m.world.Status() == game.StatusWon,
		}})
		m.recordResult(m.world.Status().String())
		log.Printf("match %s %s after %d ticks", m.ID, m.world.Status(), m.world.Tick())
		m.stopLocked()
		return
	}

	if m.world.Tick()%BroadcastEvery == 0 {
		m.broadcastState()
	}
}

// forwardEvents relays world events to clients and the event log
func (m *Match) forwardEvents(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventShot:
			m.analytics.Track(EvtShot, m.ID, ev.Tick, "")
		case game.EventEnemyHit:
			m.broadcastMsg(Envelope{T: MsgHit, Data: HitMsg{ID: ev.ID, Damage: ev.Damage}})
			m.analytics.Track(EvtEnemyHit, m.ID, ev.Tick, fmt.Sprintf(`{"enemy":%q,"dmg":%d}`, ev.ID, ev.Damage))
		case game.EventEnemyKilled:
			m.broadcastMsg(Envelope{T: MsgKill, Data: KillMsg{ID: ev.ID, Kills: m.world.Stats().Kills}})
			m.analytics.Track(EvtEnemyKilled, m.ID, ev.Tick, fmt.Sprintf(`{"enemy":%q}`, ev.ID))
		case game.EventPlayerHit:
			m.broadcastMsg(Envelope{T: MsgHit, Data: HitMsg{
				ID:     ev.ID,
				Damage: ev.Damage,
				Player: true,
				HP:     m.world.Health(),
			}})
			m.analytics.Track(EvtPlayerHit, m.ID, ev.Tick, fmt.Sprintf(`{"dmg":%d}`, ev.Damage))
		case game.EventExplosion:
			m.broadcastMsg(Envelope{T: MsgExplode, Data: ExplodeMsg{
				ID:     ev.ID,
				X:      ev.Pos.X,
				Y:      ev.Pos.Y,
				Z:      ev.Pos.Z,
				Radius: ev.Radius,
			}})
			m.analytics.Track(EvtExplosion, m.ID, ev.Tick, "")
		case game.EventWon, game.EventLost:
			m.analytics.Track(EvtMatchEnd, m.ID, ev.Tick, fmt.Sprintf(`{"outcome":%q}`, ev.Kind))
		}
	}
}

// recordResult persists the outcome once
func (m *Match) recordResult(outcome string) {
	if m.recorded {
		return
	}
	m.recorded = true
	if m.db == nil {
		return
	}
	if err := m.db.RecordResult(newMatchResult(m.ID, m.world, outcome)); err != nil {
		log.Printf("match %s: record result: %v", m.ID, err)
	}
}

// AddProxy relays a new entity. Obstacles are sent once in the welcome.
func (m *Match) AddProxy(id string, kind game.ProxyKind, pos game.Vec3) {
	if kind == game.ProxyObstacle {
		return
	}
	m.broadcastMsg(Envelope{T: MsgSpawn, Data: SpawnMsg{
		ID:   id,
		Kind: proxyKindName(kind),
		X:    pos.X,
		Y:    pos.Y,
		Z:    pos.Z,
	}})
}

// MoveProxy is a no-op: positions travel in state snapshots
func (m *Match) MoveProxy(string, game.Vec3) {}

// RemoveProxy relays an entity going away
func (m *Match) RemoveProxy(id string) {
	m.broadcastMsg(Envelope{T: MsgDespawn, Data: DespawnMsg{ID: id}})
}

// snapshot builds the broadcast state
func (m *Match) snapshot() GameState {
	w := m.world
	p := w.Player
	state := GameState{
		Tick:   w.Tick(),
		Status: w.Status().String(),
		Player: PlayerState{
			X:     p.Pos.X,
			Y:     p.Pos.Y,
			Z:     p.Pos.Z,
			Yaw:   p.Yaw,
			Pitch: p.Pitch,
			HP:    p.Health,
			MaxHP: p.MaxHealth,
		},
		Enemies:     make([]EnemyState, 0, len(w.Enemies)),
		Projectiles: make([]ProjectileState, 0, len(w.Projectiles)),
	}
	for _, e := range w.Enemies {
		state.Enemies = append(state.Enemies, EnemyState{
			ID:    e.ID,
			X:     e.Pos.X,
			Y:     e.Pos.Y,
			Z:     e.Pos.Z,
			HP:    e.Health,
			MaxHP: game.EnemyMaxHealth,
		})
	}
	for _, pr := range w.Projectiles {
		state.Projectiles = append(state.Projectiles, ProjectileState{
			ID:    pr.ID,
			X:     pr.Pos.X,
			Y:     pr.Pos.Y,
			Z:     pr.Pos.Z,
			Enemy: pr.Owner == game.OwnerEnemy,
			Bomb:  pr.IsBomb(),
		})
	}
	return state
}

// broadcastState sends the current game state to all clients as msgpack
func (m *Match) broadcastState() {
	if len(m.clients) == 0 {
		return
	}
	data, err := msgpack.Marshal(m.snapshot())
	if err != nil {
		log.Printf("match %s: marshal state: %v", m.ID, err)
		return
	}
	for _, client := range m.clients {
		client.SendBinary(data)
	}
}

// broadcastMsg sends a message to all clients of the match
func (m *Match) broadcastMsg(msg Envelope) {
	for _, client := range m.clients {
		client.SendJSON(msg)
	}
}
