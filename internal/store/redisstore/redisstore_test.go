package redisstore

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(m.Close)
	rc := redis.NewClient(&redis.Options{Addr: m.Addr()})
	return m, rc
}

func TestGetSetWithPrefix(t *testing.T) {
	ctx := context.Background()
	m, rc := setupRedis(t)
	s := newStore(rc, DefaultPrefix)
	defer s.Close()

	_, ok, err := s.Get(ctx, "items")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "items", `[]`))
	raw, err := m.Get("shelf:items")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)

	v, ok, err := s.Get(ctx, "items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestOpenWithPassword(t *testing.T) {
	ctx := context.Background()
	m, _ := setupRedis(t)
	m.RequireAuth("s3cret")

	_, err := Open(ctx, "redis://"+m.Addr()+"/0", "wrong")
	assert.Error(t, err)

	s, err := Open(ctx, "redis://"+m.Addr()+"/0", "s3cret")
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Set(ctx, "k", "v"))
}

func TestOpenBadURL(t *testing.T) {
	_, err := Open(context.Background(), "http://nope", "")
	assert.Error(t, err)
}
