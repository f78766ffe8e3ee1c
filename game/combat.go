package game

import "slices"

// resolveCombat advances every projectile, applies hits, and sweeps spent
// projectiles. Health reaching zero ends the match as lost.
func (w *World) resolveCombat() {
	for _, p := range w.Projectiles {
		if !p.Alive {
			continue
		}
		// check the segment about to be traversed so thin walls cannot be skipped
		blocked := w.hitsObstacle(p)
		p.Update()
		if !p.Alive {
			continue
		}
		switch p.Owner {
		case OwnerPlayer:
			w.strikeEnemies(p)
		case OwnerEnemy:
			w.strikePlayer(p)
		}
		if p.Alive && blocked {
			p.Alive = false
		}
		if p.Alive {
			w.scene.MoveProxy(p.ID, p.Pos)
		}
	}

	w.Projectiles = slices.DeleteFunc(w.Projectiles, func(p *Projectile) bool {
		if !p.Alive {
			w.scene.RemoveProxy(p.ID)
		}
		return !p.Alive
	})

	if !w.Player.Alive() {
		w.finish(StatusLost)
	}
}

// strikeEnemies damages the first live enemy within the shot's radius
func (w *World) strikeEnemies(p *Projectile) {
	for _, e := range w.Enemies {
		if e.Dead() || !WithinRadius(p.Pos, e.Pos, p.Shot.StrikeRadius()) {
			continue
		}
		dmg := p.Shot.Damage()
		killed := e.TakeDamage(dmg)
		p.Alive = false
		w.emit(Event{Kind: EventEnemyHit, ID: e.ID, Pos: e.Pos, Damage: dmg})
		if killed {
			w.stats.Kills++
			w.emit(Event{Kind: EventEnemyKilled, ID: e.ID, Pos: e.Pos})
		}
		return
	}
}

// strikePlayer applies an enemy shot to the player; bombs also explode
func (w *World) strikePlayer(p *Projectile) {
	if !w.Player.Alive() || !WithinRadius(p.Pos, w.Player.Pos, p.Shot.StrikeRadius()) {
		return
	}
	dmg := p.Shot.Damage()
	w.Player.TakeDamage(dmg)
	w.stats.DamageTaken += dmg
	p.Alive = false
	w.emit(Event{Kind: EventPlayerHit, ID: p.ID, Pos: p.Pos, Damage: dmg})
	if bomb, ok := p.Shot.(Bomb); ok {
		w.spawnExplosion(p.Pos, bomb.BlastRadius)
	}
}

// hitsObstacle reports whether the projectile's next step, one velocity
// length along its heading, runs into static geometry
func (w *World) hitsObstacle(p *Projectile) bool {
	speed := p.Vel.Len()
	if speed == 0 {
		return false
	}
	d, hit := w.prober.Rays.CastRay(p.Pos, p.Vel.Normalize())
	return hit && d <= speed
}
