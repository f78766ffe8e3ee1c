package game

// ProbeEpsilon is the slack added to a probe radius when deciding whether
// a ray hit counts as contact
const ProbeEpsilon = 0.1

// Prober vetoes movement that would run into static geometry
type Prober struct {
	Rays RayCaster
}

// Blocked casts three rays along disp: one from pos and two from pos
// offset sideways by radius. Any hit within radius+ProbeEpsilon blocks the
// whole move; there is no sliding.
func (p Prober) Blocked(pos, disp Vec3, radius float64) bool {
	if p.Rays == nil {
		return false
	}
	dir := disp.Normalize()
	if dir == (Vec3{}) {
		return false
	}
	side := Vec3{X: -dir.Z, Z: dir.X}.Normalize().Scale(radius)
	reach := radius + ProbeEpsilon
	origins := [3]Vec3{pos, pos.Add(side), pos.Sub(side)}
	for _, o := range origins {
		if d, hit := p.Rays.CastRay(o, dir); hit && d <= reach {
			return true
		}
	}
	return false
}

// WithinRadius reports whether two points are closer than r
func WithinRadius(a, b Vec3, r float64) bool {
	d := b.Sub(a)
	return d.X*d.X+d.Y*d.Y+d.Z*d.Z < r*r
}
