// Package session carries the authenticated identity and the per-session
// working state (ledger, budgets, pending import) through the application.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no live identity exists for a session id.
var ErrNotFound = errors.New("session not found")

// Identity is what survives a process restart: who is logged in and the
// token the authentication backend issued.
type Identity struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the identity is no longer valid at now.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Store persists identities keyed by session id.
type Store interface {
	Save(ctx context.Context, id string, identity Identity) error
	// Load returns ErrNotFound when id is unknown.
	Load(ctx context.Context, id string) (Identity, error)
	Delete(ctx context.Context, id string) error
}
