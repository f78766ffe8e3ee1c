package game

import "testing"

func TestNewPlayerBullet(t *testing.T) {
	p := NewPlayerBullet("b", Vec3{0, EyeHeight, 0}, Vec3{Z: -3})
	if p.Owner != OwnerPlayer || !p.Alive {
		t.Fatal("expected a live player bullet")
	}
	if p.Vel != (Vec3{Z: -PlayerBulletSpeed}) {
		t.Errorf("unexpected velocity %v", p.Vel)
	}
	if p.Shot.Damage() != 25 || p.Shot.StrikeRadius() != 1 {
		t.Errorf("unexpected payload %+v", p.Shot)
	}
	if p.IsBomb() {
		t.Error("player bullet is not a bomb")
	}
}

func TestNewEnemyShot(t *testing.T) {
	from := Vec3{0, 1, -10}
	target := Vec3{0, 1, 0}

	bullet := NewEnemyShot("s", from, target, false)
	if bullet.Vel != (Vec3{Z: EnemyBulletSpeed}) || bullet.Shot.Damage() != 10 {
		t.Errorf("unexpected bullet %+v", bullet)
	}
	if bullet.Shot.StrikeRadius() != 1 {
		t.Errorf("bullet strike radius %f", bullet.Shot.StrikeRadius())
	}

	bomb := NewEnemyShot("s", from, target, true)
	if !bomb.IsBomb() {
		t.Fatal("expected a bomb")
	}
	if bomb.Vel != (Vec3{Z: EnemyBombSpeed}) || bomb.Shot.Damage() != 30 {
		t.Errorf("unexpected bomb %+v", bomb)
	}
	if bomb.Shot.StrikeRadius() != 1.5 || bomb.Shot.(Bomb).BlastRadius != 3 {
		t.Errorf("unexpected bomb radii %+v", bomb.Shot)
	}
}

func TestProjectileTravelBound(t *testing.T) {
	p := NewPlayerBullet("b", Vec3{}, Vec3{X: 1})
	for i := 0; i < 50; i++ {
		p.Update()
	}
	if !p.Alive {
		t.Fatal("projectile at exactly the travel bound should survive")
	}
	p.Update()
	if p.Alive {
		t.Error("projectile past the travel bound should expire")
	}
}

func TestProjectileBoundIsFromOrigin(t *testing.T) {
	start := Vec3{X: 90}
	p := NewPlayerBullet("b", start, Vec3{X: 1})
	p.Update()
	if !p.Alive {
		t.Error("travel is measured from the spawn point, not the arena center")
	}
}
