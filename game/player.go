package game

import "math"

const (
	PlayerMaxHealth = 100
	PlayerSpeed     = 0.1 // units per tick
	PlayerRadius    = 0.5
	EyeHeight       = 1.6
	Gravity         = 0.01 // vertical velocity lost per tick
	JumpImpulse     = 0.2
	LookSensitivity = 0.002 // radians per look-delta unit
	MaxPitch        = math.Pi / 2
)

// Input is one tick of player intent
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool
	LookX   float64 // horizontal look delta
	LookY   float64 // vertical look delta
	Fire    bool
}

// Player is the camera-bound avatar
type Player struct {
	Name      string
	Pos       Vec3
	Yaw       float64
	Pitch     float64
	VY        float64
	Health    int
	MaxHealth int
}

// NewPlayer places the player at the arena center at eye height
func NewPlayer(name string) *Player {
	return &Player{
		Name:      name,
		Pos:       Vec3{0, EyeHeight, 0},
		Health:    PlayerMaxHealth,
		MaxHealth: PlayerMaxHealth,
	}
}

// Look applies look deltas; pitch is clamped to straight up/down
func (p *Player) Look(dx, dy float64) {
	p.Yaw -= dx * LookSensitivity
	p.Pitch = Clamp(p.Pitch-dy*LookSensitivity, -MaxPitch, MaxPitch)
}

// Facing returns the unit view direction. Yaw 0 looks down -Z.
func (p *Player) Facing() Vec3 {
	cp := math.Cos(p.Pitch)
	return Vec3{
		X: -math.Sin(p.Yaw) * cp,
		Y: math.Sin(p.Pitch),
		Z: -math.Cos(p.Yaw) * cp,
	}
}

// PlanarVelocity turns movement intent into a world-space step on the floor
func (p *Player) PlanarVelocity(in Input) Vec3 {
	var local Vec3
	if in.Forward {
		local.Z--
	}
	if in.Back {
		local.Z++
	}
	if in.Left {
		local.X--
	}
	if in.Right {
		local.X++
	}
	local = local.Normalize().Scale(PlayerSpeed)
	sin, cos := math.Sincos(p.Yaw)
	return Vec3{
		X: local.X*cos + local.Z*sin,
		Z: -local.X*sin + local.Z*cos,
	}
}

// Move applies one tick of movement. Planar motion is vetoed by the
// prober; vertical motion only stops at the floor.
func (p *Player) Move(in Input, prober Prober) {
	step := p.PlanarVelocity(in)
	if step != (Vec3{}) && !prober.Blocked(p.Pos, step, PlayerRadius) {
		p.Pos = p.Pos.Add(step)
	}

	grounded := p.Pos.Y <= EyeHeight
	if in.Jump && grounded {
		p.VY += JumpImpulse
	}
	p.VY -= Gravity
	p.Pos.Y += p.VY
	if p.Pos.Y < EyeHeight {
		p.Pos.Y = EyeHeight
		p.VY = 0
	}
}

// TakeDamage reduces health, clamped at zero. It returns true only on the
// hit that brings health to zero.
func (p *Player) TakeDamage(dmg int) bool {
	if p.Health <= 0 {
		return false
	}
	p.Health -= dmg
	if p.Health <= 0 {
		p.Health = 0
		return true
	}
	return false
}

// Alive reports whether the player has health left
func (p *Player) Alive() bool {
	return p.Health > 0
}
