package game

import (
	"math/rand"
	"time"
)

const (
	ExplosionParticles = 10
	ExplosionLifetime  = time.Second
	particleSpeed      = 0.5
)

// Particle is a short-lived visual fragment of an explosion
type Particle struct {
	ID  string
	Pos Vec3
	Vel Vec3
}

// Explosion is a visual-only effect; it deals no area damage. It is swept
// by the world once now passes ExpiresAt.
type Explosion struct {
	ID        string
	Center    Vec3
	Radius    float64
	Particles []Particle
	ExpiresAt time.Duration
}

// NewExplosion scatters particles upward and outward from center
func NewExplosion(id string, center Vec3, radius float64, now time.Duration, rng *rand.Rand) *Explosion {
	e := &Explosion{
		ID:        id,
		Center:    center,
		Radius:    radius,
		Particles: make([]Particle, ExplosionParticles),
		ExpiresAt: now + ExplosionLifetime,
	}
	for i := range e.Particles {
		e.Particles[i] = Particle{
			ID:  id + "-" + string(rune('a'+i)),
			Pos: center,
			Vel: Vec3{
				X: rng.Float64() - 0.5,
				Y: rng.Float64() + 0.5,
				Z: rng.Float64() - 0.5,
			}.Scale(particleSpeed),
		}
	}
	return e
}

// Update drifts the particles one tick
func (e *Explosion) Update() {
	for i := range e.Particles {
		e.Particles[i].Pos = e.Particles[i].Pos.Add(e.Particles[i].Vel)
	}
}

// Expired reports whether the effect should be swept
func (e *Explosion) Expired(now time.Duration) bool {
	return now >= e.ExpiresAt
}
