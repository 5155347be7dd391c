// Package redis stores session identities in Redis with a TTL matching
// each identity's expiry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"budgetplanner/internal/session"
)

// DefaultPrefix namespaces session keys.
const DefaultPrefix = "budgetplanner:session:"

// Store is a session.Store backed by Redis string keys holding JSON.
type Store struct {
	client goredis.UniversalClient
	prefix string
	now    func() time.Time
}

// New wraps an existing client.
func New(client goredis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, now: time.Now}
}

// Open connects to url (redis://...) and verifies the connection.
func Open(ctx context.Context, url string) (*Store, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, DefaultPrefix), nil
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) Save(ctx context.Context, id string, identity session.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	var ttl time.Duration
	if !identity.ExpiresAt.IsZero() {
		ttl = identity.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return s.Delete(ctx, id)
		}
	}
	if err := s.client.Set(ctx, s.key(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (session.Identity, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return session.Identity{}, session.ErrNotFound
	}
	if err != nil {
		return session.Identity{}, fmt.Errorf("redis get: %w", err)
	}
	var identity session.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return session.Identity{}, fmt.Errorf("decode identity: %w", err)
	}
	return identity, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}
