package game

import (
	"math"
	"testing"
)

// rayFunc adapts a function to RayCaster
type rayFunc func(origin, dir Vec3) (float64, bool)

func (f rayFunc) CastRay(origin, dir Vec3) (float64, bool) { return f(origin, dir) }

func TestProberCastsThreeRays(t *testing.T) {
	var origins []Vec3
	p := Prober{Rays: rayFunc(func(origin, dir Vec3) (float64, bool) {
		origins = append(origins, origin)
		if dir != (Vec3{X: 1}) {
			t.Errorf("expected normalized +X direction, got %v", dir)
		}
		return 0, false
	})}

	if p.Blocked(Vec3{0, 1, 0}, Vec3{X: 0.1}, 0.5) {
		t.Error("no hits should not block")
	}
	want := []Vec3{{0, 1, 0}, {0, 1, 0.5}, {0, 1, -0.5}}
	if len(origins) != len(want) {
		t.Fatalf("expected %d rays, got %d", len(want), len(origins))
	}
	for i := range want {
		if origins[i] != want[i] {
			t.Errorf("ray %d origin = %v, want %v", i, origins[i], want[i])
		}
	}
}

func TestProberHitDistance(t *testing.T) {
	sideHit := func(dist float64) Prober {
		return Prober{Rays: rayFunc(func(origin, dir Vec3) (float64, bool) {
			if origin.Z > 0 {
				return dist, true
			}
			return 0, false
		})}
	}
	if !sideHit(0.55).Blocked(Vec3{}, Vec3{X: 1}, 0.5) {
		t.Error("side hit inside radius+epsilon should block")
	}
	if !sideHit(0.6).Blocked(Vec3{}, Vec3{X: 1}, 0.5) {
		t.Error("hit exactly at radius+epsilon should block")
	}
	if sideHit(0.65).Blocked(Vec3{}, Vec3{X: 1}, 0.5) {
		t.Error("hit beyond radius+epsilon should not block")
	}
}

func TestProberEmptyObstacleSet(t *testing.T) {
	for _, p := range []Prober{{}, {Rays: BoxSet(nil)}} {
		for i := 0; i < 36; i++ {
			a := float64(i) * math.Pi / 18
			disp := Vec3{X: math.Cos(a), Z: math.Sin(a)}.Scale(0.1)
			if p.Blocked(Vec3{0, 1, 0}, disp, PlayerRadius) {
				t.Fatalf("empty obstacle set blocked displacement %v", disp)
			}
		}
	}
}

func TestProberZeroDisplacement(t *testing.T) {
	p := Prober{Rays: rayFunc(func(Vec3, Vec3) (float64, bool) { return 0, true })}
	if p.Blocked(Vec3{}, Vec3{}, 0.5) {
		t.Error("zero displacement should never block")
	}
}

func TestProberAgainstBox(t *testing.T) {
	box := BoxSet{{ID: "box", Center: Vec3{0, 1, 0}, HalfExtents: Vec3{1, 1, 1}}}
	p := Prober{Rays: box}

	if !p.Blocked(Vec3{-1.55, 1, 0}, Vec3{X: 0.1}, 0.5) {
		t.Error("moving into a face 0.55 away should be blocked")
	}
	if p.Blocked(Vec3{-1.75, 1, 0}, Vec3{X: 0.1}, 0.5) {
		t.Error("face 0.75 away should not block")
	}
	if p.Blocked(Vec3{-1.55, 1, 0}, Vec3{X: -0.1}, 0.5) {
		t.Error("moving away from a face should not be blocked")
	}
}

func TestProberSideRayCatchesGrazingBox(t *testing.T) {
	// narrow box off to the side: the center ray misses, the +side ray hits
	box := BoxSet{{ID: "post", Center: Vec3{0, 1, 0.5}, HalfExtents: Vec3{0.2, 1, 0.2}}}
	p := Prober{Rays: box}

	if d, hit := box.CastRay(Vec3{-0.7, 1, 0}, Vec3{X: 1}); hit {
		t.Fatalf("center ray should miss, hit at %f", d)
	}
	if !p.Blocked(Vec3{-0.7, 1, 0}, Vec3{X: 0.02}, 0.5) {
		t.Error("side ray hit should block")
	}
}

func TestBoxSetCastRay(t *testing.T) {
	bs := BoxSet(DefaultArena())

	d, hit := bs.CastRay(Vec3{0, 1, 0}, Vec3{Z: -1})
	if !hit || math.Abs(d-24.5) > 1e-9 {
		t.Errorf("expected north wall at 24.5, got %f (hit=%v)", d, hit)
	}

	d, hit = bs.CastRay(Vec3{-20, 1, -9.5}, Vec3{X: 1})
	if !hit || math.Abs(d-9.5) > 1e-9 {
		t.Errorf("expected pillar face at 9.5, got %f (hit=%v)", d, hit)
	}

	// above every obstacle
	if _, hit := bs.CastRay(Vec3{0, 10, 0}, Vec3{X: 1}); hit {
		t.Error("ray above the walls should miss")
	}
}

func TestBoxSetRayFromInside(t *testing.T) {
	bs := BoxSet{{ID: "box", Center: Vec3{}, HalfExtents: Vec3{1, 1, 1}}}
	if _, hit := bs.CastRay(Vec3{}, Vec3{X: 1}); hit {
		t.Error("ray starting inside a box should not hit it")
	}
	if _, hit := bs.CastRay(Vec3{X: 3}, Vec3{X: 1}); hit {
		t.Error("box behind the ray should not be hit")
	}
}

func TestWithinRadius(t *testing.T) {
	if !WithinRadius(Vec3{}, Vec3{X: 0.99}, 1) {
		t.Error("0.99 should be within 1")
	}
	if WithinRadius(Vec3{}, Vec3{X: 1}, 1) {
		t.Error("exactly r apart should not count")
	}
}
