package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetplanner/internal/budget"
	"budgetplanner/internal/cache"
	"budgetplanner/internal/core"
	"budgetplanner/internal/ingest"
	"budgetplanner/internal/session"
	"budgetplanner/internal/session/memory"
)

func TestStartGetEnd(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	m := session.NewManager(store, time.Hour)

	s, err := m.Start(ctx, "me@example.com", "tok", time.Time{})
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, "me@example.com", s.Recipient())
	assert.Equal(t, 1, store.Len())

	s.Ledger.Append(core.Expense{Amount: 5, Category: "Bills"})
	got, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, got.Ledger.Len())

	require.NoError(t, m.End(ctx, s.ID))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, s.Ledger.Len(), "logout drops the ledger")
	_, err = m.Get(ctx, s.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestGetRestoresIdentityWithFreshState(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Save(ctx, "abc", session.Identity{
		Email:     "back@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	m := session.NewManager(store, 0)
	s, err := m.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "back@example.com", s.Recipient())
	assert.Equal(t, 0, s.Ledger.Len())
	assert.Equal(t, 1, m.Active())
}

func TestExpiredIdentityIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	m := session.NewManager(store, time.Hour)

	s, err := m.Start(ctx, "old@example.com", "tok", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = m.Get(ctx, s.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, m.Active())
}

func TestGetUnknownOrEmpty(t *testing.T) {
	m := session.NewManager(memory.New(), time.Hour)
	_, err := m.Get(context.Background(), "")
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = m.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, m.End(context.Background(), "nope"))
}

type failingStore struct{ session.Store }

func (failingStore) Save(context.Context, string, session.Identity) error {
	return errors.New("disk full")
}

func (failingStore) Load(context.Context, string) (session.Identity, error) {
	return session.Identity{}, errors.New("disk gone")
}

func TestStoreErrorsPropagate(t *testing.T) {
	m := session.NewManager(failingStore{}, time.Hour)
	_, err := m.Start(context.Background(), "a", "b", time.Time{})
	assert.ErrorContains(t, err, "disk full")
	_, err = m.Get(context.Background(), "x")
	assert.ErrorContains(t, err, "disk gone")
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestSessionState(t *testing.T) {
	m := session.NewManager(memory.New(), time.Hour)
	s, err := m.Start(context.Background(), "a@b.c", "t", time.Time{})
	require.NoError(t, err)

	b := budget.Budgets{"Bills": 100}
	s.SetBudgets(b)
	b["Bills"] = 1
	assert.Equal(t, 100.0, s.Budgets()["Bills"], "budgets are copied on save")

	_, ok := s.PendingImport()
	assert.False(t, ok)
	s.SetPendingImport(ingest.Statement{Filename: "a.csv"})
	st, ok := s.PendingImport()
	require.True(t, ok)
	assert.Equal(t, "a.csv", st.Filename)

	st, ok = s.TakePendingImport()
	assert.True(t, ok)
	assert.Equal(t, "a.csv", st.Filename)
	_, ok = s.TakePendingImport()
	assert.False(t, ok)

	s.SetPendingImport(ingest.Statement{Filename: "b.csv"})
	s.ClearPendingImport()
	_, ok = s.PendingImport()
	assert.False(t, ok)
}

func TestCachedStore(t *testing.T) {
	ctx := context.Background()
	backing := memory.New()
	c := cache.NewLRUCache[session.Identity](8, time.Minute)
	store := session.NewCachedStore(backing, c)

	id := session.Identity{Email: "c@d.e"}
	require.NoError(t, store.Save(ctx, "k", id))
	assert.Equal(t, 1, c.Size())

	// A hit is served from the cache even if the backing store lost it.
	require.NoError(t, backing.Delete(ctx, "k"))
	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Load(ctx, "k")
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, backing.Save(ctx, "warm", id))
	_, err = store.Load(ctx, "warm")
	require.NoError(t, err)
	_, cached := c.Get("warm")
	assert.True(t, cached)
}

func TestIdentityExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, session.Identity{}.Expired(now))
	assert.False(t, session.Identity{ExpiresAt: now.Add(time.Second)}.Expired(now))
	assert.True(t, session.Identity{ExpiresAt: now}.Expired(now))
}
