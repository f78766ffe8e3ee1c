package game

import "time"

// Config holds the per-match setup. Physics constants live next to the
// components that use them.
type Config struct {
	EnemyCount     int
	Seed           int64
	Obstacles      []Obstacle // nil means DefaultArena()
	FireChance     float64    // per enemy per tick
	BombChance     float64    // per enemy per tick
	RepathInterval time.Duration
}

// DefaultConfig returns the standard single-level setup
func DefaultConfig() Config {
	return Config{
		EnemyCount:     5,
		Seed:           time.Now().UnixNano(),
		FireChance:     0.01,
		BombChance:     0.005,
		RepathInterval: time.Second,
	}
}
