package game

// EventKind identifies something the presentation layer may want to show
type EventKind int

const (
	EventShot EventKind = iota
	EventEnemyHit
	EventEnemyKilled
	EventPlayerHit
	EventExplosion
	EventWon
	EventLost
)

func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventEnemyHit:
		return "enemy_hit"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventPlayerHit:
		return "player_hit"
	case EventExplosion:
		return "explosion"
	case EventWon:
		return "won"
	case EventLost:
		return "lost"
	}
	return "unknown"
}

// Event is queued during Step and drained by the host after each tick
type Event struct {
	Kind   EventKind
	Tick   uint64
	ID     string // entity the event is about, if any
	Pos    Vec3
	Damage int
	Radius float64
}
