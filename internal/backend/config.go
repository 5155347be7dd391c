package backend

import (
	"fmt"
	"time"

	"budgetplanner/internal/config"
)

// DefaultCacheSize bounds the identity cache in front of remote stores.
const DefaultCacheSize = 1024

// FromAppConfig derives the store configuration from the application config.
// Remote stores get a cache whose TTL never outlives a session.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.SessionBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.SessionBackend)
	}

	cfg := Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		RedisURL:     appConfig.RedisURL,
	}
	if backendType != MemoryBackend {
		cfg.CacheSize = DefaultCacheSize
		cfg.CacheTTL = min(5*time.Minute, appConfig.SessionTTL)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case RedisBackend:
		if c.RedisURL == "" {
			return fmt.Errorf("Redis URL is required for redis backend")
		}
	}
	if c.CacheSize > 0 && c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive when caching is enabled")
	}
	return nil
}

// GetBackendTypeStrings returns every valid backend name.
func GetBackendTypeStrings() []string {
	return []string{MemoryBackend.String(), SQLiteBackend.String(), RedisBackend.String()}
}
