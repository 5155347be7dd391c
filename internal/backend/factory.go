package backend

import (
	"context"
	"fmt"
	"log/slog"

	"budgetplanner/internal/cache"
	"budgetplanner/internal/session"
	"budgetplanner/internal/session/memory"
	sessionredis "budgetplanner/internal/session/redis"
	"budgetplanner/internal/storage"
)

// DefaultFactory builds the stores shipped with the application.
type DefaultFactory struct {
	logger *slog.Logger
	caches *cache.Manager
}

// NewFactory returns a Factory. Caches it creates are registered with
// caches when it is not nil.
func NewFactory(logger *slog.Logger, caches *cache.Manager) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger, caches: caches}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(config)
	case RedisBackend:
		result, err = f.createRedisBackend(ctx, config)
	case MemoryBackend:
		store := memory.New()
		result = &BackendResult{Store: store, Pruner: store}
		f.logger.Info("Initialized memory session store")
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.CacheSize > 0 {
		c := cache.NewLRUCache[session.Identity](config.CacheSize, config.CacheTTL)
		if f.caches != nil {
			f.caches.Register(c)
		}
		result.Store = &pingableCache{CachedStore: session.NewCachedStore(result.Store, c), next: result.Store}
		f.logger.Info("Session store cache enabled", "size", config.CacheSize, "ttl", config.CacheTTL)
	}
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite session store", "db_path", config.SQLiteDBPath)
	return &BackendResult{Store: repo, Cleanup: repo.Close, Pruner: repo}, nil
}

func (f *DefaultFactory) createRedisBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := sessionredis.Open(ctx, config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis session store: %w", err)
	}
	f.logger.Info("Initialized Redis session store")
	return &BackendResult{Store: store, Cleanup: store.Close}, nil
}

// pingableCache keeps the readiness check of the wrapped store.
type pingableCache struct {
	*session.CachedStore
	next session.Store
}

func (p *pingableCache) Ping(ctx context.Context) error {
	if pinger, ok := p.next.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}
