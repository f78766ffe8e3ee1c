package game

const (
	PlayerBulletSpeed   = 2.0
	PlayerBulletDamage  = 25
	EnemyBulletSpeed    = 0.5
	EnemyBulletDamage   = 10
	EnemyBombSpeed      = 0.3
	EnemyBombDamage     = 30
	BombBlastRadius     = 3.0
	EnemyStrikeRadius   = 1.0 // player shots against enemies
	BulletStrikeRadius  = 1.0 // enemy bullets against the player
	BombStrikeRadius    = 1.5
	MaxProjectileTravel = 100.0
)

// Owner says which side fired a projectile
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Shot is the kind-specific payload of a projectile: Bullet or Bomb
type Shot interface {
	StrikeRadius() float64
	Damage() int
}

// Bullet is a plain damaging round
type Bullet struct {
	Dmg    int
	Strike float64
}

func (b Bullet) StrikeRadius() float64 { return b.Strike }
func (b Bullet) Damage() int { return b.Dmg }

// Bomb explodes on contact with the player
type Bomb struct {
	Dmg         int
	BlastRadius float64
}

func (b Bomb) StrikeRadius() float64 { return BombStrikeRadius }
func (b Bomb) Damage() int { return b.Dmg }

// Projectile is a moving shot in the arena
type Projectile struct {
	ID     string
	Owner  Owner
	Pos    Vec3
	Vel    Vec3
	Origin Vec3
	Shot   Shot
	Alive  bool
}

// NewPlayerBullet fires from the camera along its view direction
func NewPlayerBullet(id string, from, dir Vec3) *Projectile {
	return &Projectile{
		ID:     id,
		Owner:  OwnerPlayer,
		Pos:    from,
		Origin: from,
		Vel:    dir.Normalize().Scale(PlayerBulletSpeed),
		Shot:   Bullet{Dmg: PlayerBulletDamage, Strike: EnemyStrikeRadius},
		Alive:  true,
	}
}

// NewEnemyShot aims a bullet or bomb straight at target
func NewEnemyShot(id string, from, target Vec3, bomb bool) *Projectile {
	dir := target.Sub(from).Normalize()
	p := &Projectile{
		ID:     id,
		Owner:  OwnerEnemy,
		Pos:    from,
		Origin: from,
		Alive:  true,
	}
	if bomb {
		p.Vel = dir.Scale(EnemyBombSpeed)
		p.Shot = Bomb{Dmg: EnemyBombDamage, BlastRadius: BombBlastRadius}
	} else {
		p.Vel = dir.Scale(EnemyBulletSpeed)
		p.Shot = Bullet{Dmg: EnemyBulletDamage, Strike: BulletStrikeRadius}
	}
	return p
}

// Update moves the projectile one tick and expires it past the travel bound
func (p *Projectile) Update() {
	if !p.Alive {
		return
	}
	p.Pos = p.Pos.Add(p.Vel)
	if Distance(p.Origin, p.Pos) > MaxProjectileTravel {
		p.Alive = false
	}
}

// IsBomb reports whether the payload is a bomb
func (p *Projectile) IsBomb() bool {
	_, ok := p.Shot.(Bomb)
	return ok
}
