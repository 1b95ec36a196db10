// File: handlers/sessions.go
package handlers

import (
	"sync"
	"time"

	"bookview/models"

	"github.com/google/uuid"
)

// sessionStore keeps per-session component state. A session is created when
// a component mounts, removed when it unmounts, and swept after an idle TTL
// so abandoned tabs don't pile up.
type sessionStore[T any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*sessionEntry[T]
}

type sessionEntry[T any] struct {
	value    T
	lastSeen time.Time
}

func newSessionStore[T any](ttl time.Duration) *sessionStore[T] {
	s := &sessionStore[T]{
		ttl:      ttl,
		sessions: make(map[string]*sessionEntry[T]),
	}
	go s.sweep()
	return s
}

func (s *sessionStore[T]) Put(value T) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &sessionEntry[T]{value: value, lastSeen: time.Now()}
	s.mu.Unlock()
	return id
}

func (s *sessionStore[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		var zero T
		return zero, false
	}
	entry.lastSeen = time.Now()
	return entry.value, true
}

func (s *sessionStore[T]) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// sweep drops sessions idle past the TTL.
func (s *sessionStore[T]) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for id, entry := range s.sessions {
			if entry.lastSeen.Before(cutoff) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

// navRecorder captures the host navigation callback for one session so the
// thin client can follow it.
type navRecorder struct {
	mu   sync.Mutex
	last *models.Navigation
}

func (n *navRecorder) Navigate(page, entityID string) {
	n.mu.Lock()
	n.last = &models.Navigation{Page: page, EntityID: entityID}
	n.mu.Unlock()
}

func (n *navRecorder) Last() *models.Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
