package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetplanner/internal/session"
)

// Runs against a real server when REDIS_TEST_URL is set.
func TestStoreRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, url)
	require.NoError(t, err)
	defer s.Close()
	s.prefix = "budgetplanner:test:"

	id := session.Identity{Email: "r@example.com", Token: "t", ExpiresAt: time.Now().Add(time.Minute).UTC().Truncate(time.Second)}
	require.NoError(t, s.Save(ctx, "one", id))

	got, err := s.Load(ctx, "one")
	require.NoError(t, err)
	assert.True(t, id.ExpiresAt.Equal(got.ExpiresAt))
	assert.Equal(t, id.Email, got.Email)

	require.NoError(t, s.Delete(ctx, "one"))
	_, err = s.Load(ctx, "one")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestOpenBadURL(t *testing.T) {
	_, err := Open(context.Background(), "not-a-url://")
	assert.Error(t, err)
}

func TestKeyPrefix(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	s := New(client, "")
	assert.Equal(t, DefaultPrefix+"abc", s.key("abc"))
}

func TestSaveExpiredDeletes(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, url)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, "gone", session.Identity{Email: "x", ExpiresAt: time.Now().Add(-time.Second)}))
	_, err = s.Load(ctx, "gone")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
