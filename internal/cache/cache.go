// Package cache provides a generic in-process LRU cache with TTL and a
// manager that sweeps expired entries in the background.
package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cache is the read-through surface used by callers.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically cleans every registered cache.
type Manager struct {
	caches []Cleaner
	logger *slog.Logger
}

// NewManager returns a Manager logging through logger, or slog.Default.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

// Register adds a cache to the sweep. Call before Run.
func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// Sweep cleans every registered cache once and returns the removed count.
func (m *Manager) Sweep() int {
	removed := 0
	for _, c := range m.caches {
		removed += c.CleanExpired()
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.DebugContext(ctx, "Expired cache entries removed", "removed", n)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
