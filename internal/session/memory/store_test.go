package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetplanner/internal/session"
)

func TestStoreSaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Save(ctx, "a", session.Identity{Email: "a@b.c"}))
	got, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Load(ctx, "a")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStoreDeleteExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "stale", session.Identity{Email: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, s.Save(ctx, "live", session.Identity{Email: "new", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, s.Save(ctx, "forever", session.Identity{Email: "none"}))

	n, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 2, s.Len())

	_, err = s.Load(ctx, "stale")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
