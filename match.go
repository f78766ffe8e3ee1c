package main

import (
	"time"

	"arena-server/game"
)

// OutcomeAbandoned marks a match whose player left before it ended
const OutcomeAbandoned = "abandoned"

// MatchResult is the persisted summary of one match
type MatchResult struct {
	MatchID     string    `json:"mid"`
	PlayerName  string    `json:"name"`
	Outcome     string    `json:"outcome"` // won, lost or abandoned
	Ticks       uint64    `json:"ticks"`
	Kills       int       `json:"kills"`
	ShotsFired  int       `json:"shots"`
	DamageTaken int       `json:"dmg"`
	CreatedAt   time.Time `json:"at"`
}

func newMatchResult(id string, w *game.World, outcome string) MatchResult {
	st := w.Stats()
	return MatchResult{
		MatchID:     id,
		PlayerName:  w.Player.Name,
		Outcome:     outcome,
		Ticks:       st.Ticks,
		Kills:       st.Kills,
		ShotsFired:  st.ShotsFired,
		DamageTaken: st.DamageTaken,
		CreatedAt:   time.Now().UTC(),
	}
}

// matchConfig derives the per-match world setup from the server config
func matchConfig(cfg Config) game.Config {
	mc := game.DefaultConfig()
	if cfg.Enemies > 0 {
		mc.EnemyCount = cfg.Enemies
	}
	if cfg.Seed != 0 {
		mc.Seed = cfg.Seed
	}
	return mc
}
