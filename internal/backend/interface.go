package backend

import (
	"context"
	"time"

	"budgetplanner/internal/session"
)

// CleanupFunc releases resources held by a store.
type CleanupFunc func() error

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Pruner deletes expired identities from stores that keep them forever.
type Pruner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// BackendResult holds the identity store and its optional cleanup. Pruner
// is set only for stores without native expiry.
type BackendResult struct {
	Store   session.Store
	Cleanup CleanupFunc
	Pruner  Pruner
}

// Ready pings the store when it supports it.
func (r *BackendResult) Ready(ctx context.Context) error {
	if p, ok := r.Store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Factory creates identity stores from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config selects and parameterizes an identity store.
type Config struct {
	Type BackendType

	SQLiteDBPath string
	RedisURL     string

	// CacheSize > 0 fronts the store with an LRU cache holding entries
	// for CacheTTL.
	CacheSize int
	CacheTTL  time.Duration
}

// BackendType names an identity store implementation.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	RedisBackend  BackendType = "redis"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, RedisBackend:
		return true
	default:
		return false
	}
}
