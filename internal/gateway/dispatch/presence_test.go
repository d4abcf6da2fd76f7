package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestPresence(t *testing.T) (*Presence, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewPresence(client, time.Minute), mr
}

func TestPresence_PublishOnline(t *testing.T) {
	t.Parallel()

	p, mr := newTestPresence(t)
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, "driver-1", true))

	online, err := p.Online(ctx, "driver-1")
	require.NoError(t, err)
	require.True(t, online)

	ttl := mr.TTL("dispatch:driver:driver-1:online")
	require.Equal(t, time.Minute, ttl)
}

func TestPresence_PublishOffline(t *testing.T) {
	t.Parallel()

	p, _ := newTestPresence(t)
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, "driver-1", true))
	require.NoError(t, p.Publish(ctx, "driver-1", false))

	online, err := p.Online(ctx, "driver-1")
	require.NoError(t, err)
	require.False(t, online)
}

func TestPresence_KeyExpires(t *testing.T) {
	t.Parallel()

	p, mr := newTestPresence(t)
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, "driver-1", true))
	mr.FastForward(2 * time.Minute)

	online, err := p.Online(ctx, "driver-1")
	require.NoError(t, err)
	require.False(t, online, "expired presence must read as offline")
}

func TestNewPresence_NilClient(t *testing.T) {
	t.Parallel()
	require.Nil(t, NewPresence(nil, time.Minute))
}
