package worker

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredDeleter removes identities whose expiry has passed.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionJanitor periodically prunes expired identities from a store that
// does not expire keys by itself.
type SessionJanitor struct {
	store    ExpiredDeleter
	interval time.Duration
}

func NewSessionJanitor(store ExpiredDeleter, interval time.Duration) *SessionJanitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionJanitor{store: store, interval: interval}
}

// Run prunes once at start and then every interval until ctx is cancelled.
func (j *SessionJanitor) Run(ctx context.Context) error {
	j.prune(ctx)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			j.prune(ctx)
		}
	}
}

func (j *SessionJanitor) prune(ctx context.Context) {
	n, err := j.store.DeleteExpired(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to prune expired sessions", "error", err)
		return
	}
	if n > 0 {
		slog.InfoContext(ctx, "Pruned expired sessions", "count", n)
	}
}
