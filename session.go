package main

import (
	"errors"
	"sync"
	"time"
)

const maxMatches = 100

// SessionIdleTimeout is how long a match survives with no client attached.
// A reloaded tab has this long to come back with its ticket.
var SessionIdleTimeout = 2 * time.Minute

var errTooManyMatches = errors.New("too many active matches")

// SessionManager handles creation, lookup and reaping of matches
type SessionManager struct {
	mu        sync.RWMutex
	matches   map[string]*Match
	cfg       Config
	db        *DB
	analytics *Analytics
}

// NewSessionManager creates a new SessionManager; db and analytics may be nil
func NewSessionManager(cfg Config, db *DB, analytics *Analytics) *SessionManager {
	return &SessionManager{
		matches:   make(map[string]*Match),
		cfg:       cfg,
		db:        db,
		analytics: analytics,
	}
}

// CreateMatch builds a match and starts its tick loop
func (sm *SessionManager) CreateMatch() (*Match, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.matches) >= maxMatches {
		return nil, errTooManyMatches
	}

	id := GenerateUUID()
	m := NewMatch(id, matchConfig(sm.cfg), sm.db, sm.analytics)
	sm.matches[id] = m
	go m.Run()
	return m, nil
}

// GetMatch returns a match by ID
func (sm *SessionManager) GetMatch(id string) *Match {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.matches[id]
}

// Detach removes a client from a match. Once the last player is gone the
// match is reaped after SessionIdleTimeout unless someone reattaches.
func (sm *SessionManager) Detach(matchID, clientID string) {
	m := sm.GetMatch(matchID)
	if m == nil {
		return
	}
	if m.Detach(clientID) > 0 {
		return
	}
	timeout := SessionIdleTimeout
	time.AfterFunc(timeout, func() {
		if m.IdleFor(time.Now()) >= timeout {
			sm.RemoveMatch(matchID)
		}
	})
}

// RemoveMatch closes a match and forgets it
func (sm *SessionManager) RemoveMatch(id string) {
	sm.mu.Lock()
	m, ok := sm.matches[id]
	delete(sm.matches, id)
	sm.mu.Unlock()
	if ok {
		m.Close()
	}
}

// MatchCount returns the number of live matches
func (sm *SessionManager) MatchCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.matches)
}

// CloseAll closes every match, recording unfinished ones as abandoned
func (sm *SessionManager) CloseAll() {
	sm.mu.Lock()
	matches := sm.matches
	sm.matches = make(map[string]*Match)
	sm.mu.Unlock()
	for _, m := range matches {
		m.Close()
	}
}
