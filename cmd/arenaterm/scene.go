package main

import (
	"arena-server/game"
)

type proxy struct {
	kind game.ProxyKind
	pos  game.Vec3
}

// proxyScene mirrors the world's entities for drawing
type proxyScene struct {
	proxies map[string]proxy
}

func newProxyScene() *proxyScene {
	return &proxyScene{proxies: make(map[string]proxy)}
}

func (s *proxyScene) AddProxy(id string, kind game.ProxyKind, pos game.Vec3) {
	s.proxies[id] = proxy{kind: kind, pos: pos}
}

func (s *proxyScene) MoveProxy(id string, pos game.Vec3) {
	if p, ok := s.proxies[id]; ok {
		p.pos = pos
		s.proxies[id] = p
	}
}

func (s *proxyScene) RemoveProxy(id string) {
	delete(s.proxies, id)
}

// count returns the number of live proxies of one kind
func (s *proxyScene) count(kind game.ProxyKind) int {
	n := 0
	for _, p := range s.proxies {
		if p.kind == kind {
			n++
		}
	}
	return n
}
