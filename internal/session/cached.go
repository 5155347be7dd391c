package session

import (
	"context"

	"budgetplanner/internal/cache"
)

// CachedStore fronts a Store with an in-process cache. Writes go through to
// the underlying store first.
type CachedStore struct {
	next  Store
	cache cache.Cache[Identity]
}

// NewCachedStore wraps next with c.
func NewCachedStore(next Store, c cache.Cache[Identity]) *CachedStore {
	return &CachedStore{next: next, cache: c}
}

func (s *CachedStore) Save(ctx context.Context, id string, identity Identity) error {
	if err := s.next.Save(ctx, id, identity); err != nil {
		return err
	}
	s.cache.Set(id, identity)
	return nil
}

func (s *CachedStore) Load(ctx context.Context, id string) (Identity, error) {
	if identity, ok := s.cache.Get(id); ok {
		return identity, nil
	}
	identity, err := s.next.Load(ctx, id)
	if err != nil {
		return Identity{}, err
	}
	s.cache.Set(id, identity)
	return identity, nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	s.cache.Delete(id)
	return s.next.Delete(ctx, id)
}
