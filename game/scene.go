package game

// ProxyKind is the visual kind of an entity mirrored by the presentation layer
type ProxyKind int

const (
	ProxyObstacle ProxyKind = iota
	ProxyEnemy
	ProxyBullet
	ProxyBomb
	ProxyParticle
)

// Scene is the presentation collaborator. The world creates a proxy for
// every obstacle, enemy, projectile and particle, writes positions into
// it, and removes it when the entity goes away.
type Scene interface {
	AddProxy(id string, kind ProxyKind, pos Vec3)
	MoveProxy(id string, pos Vec3)
	RemoveProxy(id string)
}

type nopScene struct{}

func (nopScene) AddProxy(string, ProxyKind, Vec3) {}
func (nopScene) MoveProxy(string, Vec3) {}
func (nopScene) RemoveProxy(string) {}
