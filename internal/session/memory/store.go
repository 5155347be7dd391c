// Package memory keeps session identities in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"budgetplanner/internal/session"
)

// Store is a map-backed session.Store. Identities are lost on restart.
type Store struct {
	mu    sync.RWMutex
	items map[string]session.Identity
	now   func() time.Time
}

func New() *Store {
	return &Store{items: make(map[string]session.Identity), now: time.Now}
}

func (s *Store) Save(_ context.Context, id string, identity session.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = identity
	return nil
}

func (s *Store) Load(_ context.Context, id string) (session.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.items[id]
	if !ok {
		return session.Identity{}, session.ErrNotFound
	}
	return identity, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// DeleteExpired removes every identity whose expiry has passed.
func (s *Store) DeleteExpired(_ context.Context) (int64, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, identity := range s.items {
		if identity.Expired(now) {
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored identities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
