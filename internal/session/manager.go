package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL applies when the token carries no expiry.
const DefaultTTL = 24 * time.Hour

// Manager starts, resolves and ends sessions. Identities go to the Store;
// working state stays in this process.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
	newID func() string

	mu     sync.Mutex
	active map[string]*Session
}

// NewManager returns a Manager backed by store. ttl <= 0 uses DefaultTTL.
func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		newID:  uuid.NewString,
		active: make(map[string]*Session),
	}
}

// Start records a freshly authenticated identity under a new session id.
// A zero expiresAt means now + ttl.
func (m *Manager) Start(ctx context.Context, email, token string, expiresAt time.Time) (*Session, error) {
	if expiresAt.IsZero() {
		expiresAt = m.now().Add(m.ttl)
	}
	identity := Identity{Email: email, Token: token, ExpiresAt: expiresAt.UTC()}
	id := m.newID()
	if err := m.store.Save(ctx, id, identity); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s := newSession(id, identity)
	m.mu.Lock()
	m.active[id] = s
	m.mu.Unlock()
	return s, nil
}

// Get resolves id to a session. An identity found in the store with no
// working state in this process gets a fresh, empty one.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	identity, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		m.drop(id)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if identity.Expired(m.now()) {
		if err := m.store.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		m.drop(id)
		return nil, ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.active[id]
	if !ok {
		s = newSession(id, identity)
		m.active[id] = s
	}
	return s, nil
}

// End removes the identity and discards the session's working state.
func (m *Manager) End(ctx context.Context, id string) error {
	m.drop(id)
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Active returns how many sessions hold working state in this process.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

func (m *Manager) drop(id string) {
	m.mu.Lock()
	s, ok := m.active[id]
	delete(m.active, id)
	m.mu.Unlock()
	if ok {
		s.clear()
	}
}
