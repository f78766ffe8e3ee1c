package main

import (
	"encoding/json"

	"arena-server/game"
)

// Client -> Server message types
const (
	MsgStart  = "start"  // start a new match
	MsgResume = "resume" // reattach to a running match with a ticket
	MsgWatch  = "watch"  // follow a match read-only, by ID
	MsgInput  = "input"
	MsgLeave  = "leave"
)

// Server -> Client message types
const (
	MsgWelcome  = "welcome"
	MsgWatching = "watching"
	MsgState    = "state" // binary, msgpack GameState
	MsgSpawn    = "spawn"
	MsgDespawn  = "despawn"
	MsgHit      = "hit"
	MsgKill     = "kill"
	MsgExplode  = "explode"
	MsgOver     = "over"
	MsgError    = "error"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// StartMsg asks for a new match under a display name
type StartMsg struct {
	Name string `json:"name"`
}

// ResumeMsg reattaches a reloaded tab to its match
type ResumeMsg struct {
	Ticket string `json:"ticket"`
}

// WatchMsg asks to follow a match without playing it
type WatchMsg struct {
	MatchID string `json:"mid"`
}

// InputMsg is one frame of player intent. Movement flags are held state;
// look deltas accumulate and fire latches until the next tick.
type InputMsg struct {
	Forward bool    `json:"f"`
	Back    bool    `json:"b"`
	Left    bool    `json:"l"`
	Right   bool    `json:"r"`
	Jump    bool    `json:"j"`
	LookX   float64 `json:"dx"`
	LookY   float64 `json:"dy"`
	Fire    bool    `json:"fire"`
}

// ObstacleState describes a static box
type ObstacleState struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	HX float64 `json:"hx"`
	HY float64 `json:"hy"`
	HZ float64 `json:"hz"`
}

// WelcomeMsg is sent once a match is started or resumed
type WelcomeMsg struct {
	MatchID   string          `json:"mid"`
	Ticket    string          `json:"ticket"`
	Name      string          `json:"name"`
	Obstacles []ObstacleState `json:"obs"`
}

// WatchingMsg confirms a watch; it carries no ticket
type WatchingMsg struct {
	MatchID   string          `json:"mid"`
	Name      string          `json:"name"`
	Obstacles []ObstacleState `json:"obs"`
}

// PlayerState is the camera pose and health
type PlayerState struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Z     float64 `json:"z" msgpack:"z"`
	Yaw   float64 `json:"yaw" msgpack:"yaw"`
	Pitch float64 `json:"pitch" msgpack:"pitch"`
	HP    int     `json:"hp" msgpack:"hp"`
	MaxHP int     `json:"mhp" msgpack:"mhp"`
}

// EnemyState is broadcast per enemy
type EnemyState struct {
	ID    string  `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Z     float64 `json:"z" msgpack:"z"`
	HP    int     `json:"hp" msgpack:"hp"`
	MaxHP int     `json:"mhp" msgpack:"mhp"`
}

// ProjectileState is broadcast per projectile
type ProjectileState struct {
	ID    string  `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Z     float64 `json:"z" msgpack:"z"`
	Enemy bool    `json:"e,omitempty" msgpack:"e,omitempty"`
	Bomb  bool    `json:"bomb,omitempty" msgpack:"bomb,omitempty"`
}

// GameState is the full state broadcast
type GameState struct {
	Tick        uint64            `json:"tick" msgpack:"tick"`
	Status      string            `json:"st" msgpack:"st"`
	Player      PlayerState       `json:"p" msgpack:"p"`
	Enemies     []EnemyState      `json:"e" msgpack:"e"`
	Projectiles []ProjectileState `json:"pr" msgpack:"pr"`
}

// SpawnMsg announces a new scene proxy
type SpawnMsg struct {
	ID   string  `json:"id"`
	Kind string  `json:"k"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// DespawnMsg removes a scene proxy
type DespawnMsg struct {
	ID string `json:"id"`
}

// HitMsg reports damage to an enemy or, with Player set, to the player
type HitMsg struct {
	ID     string `json:"id"`
	Damage int    `json:"dmg"`
	Player bool   `json:"p,omitempty"`
	HP     int    `json:"hp,omitempty"`
}

// KillMsg reports an enemy kill
type KillMsg struct {
	ID    string `json:"id"`
	Kills int    `json:"kills"`
}

// ExplodeMsg starts an explosion effect
type ExplodeMsg struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"r"`
}

// OverMsg carries the final outcome
type OverMsg struct {
	Msg string `json:"msg"`
	Won bool   `json:"won"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

func (in InputMsg) toGame() game.Input {
	return game.Input{
		Forward: in.Forward,
		Back:    in.Back,
		Left:    in.Left,
		Right:   in.Right,
		Jump:    in.Jump,
		LookX:   in.LookX,
		LookY:   in.LookY,
		Fire:    in.Fire,
	}
}

func proxyKindName(k game.ProxyKind) string {
	switch k {
	case game.ProxyObstacle:
		return "obstacle"
	case game.ProxyEnemy:
		return "enemy"
	case game.ProxyBullet:
		return "bullet"
	case game.ProxyBomb:
		return "bomb"
	case game.ProxyParticle:
		return "particle"
	}
	return "unknown"
}

func obstacleStates(obs []game.Obstacle) []ObstacleState {
	out := make([]ObstacleState, 0, len(obs))
	for _, o := range obs {
		out = append(out, ObstacleState{
			ID: o.ID,
			X:  o.Center.X,
			Y:  o.Center.Y,
			Z:  o.Center.Z,
			HX: o.HalfExtents.X,
			HY: o.HalfExtents.Y,
			HZ: o.HalfExtents.Z,
		})
	}
	return out
}
