package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	l := NewPerWindow(clock, 3, time.Second, 0)

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("ip-1"), "request %d within burst must pass", i)
	}
	require.False(t, l.Allow("ip-1"), "burst exhausted")
}

func TestTokenBucket_RefillOverTime(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	l := NewPerWindow(clock, 2, time.Second, 0)

	require.True(t, l.Allow("ip-1"))
	require.True(t, l.Allow("ip-1"))
	require.False(t, l.Allow("ip-1"))

	clock.advance(500 * time.Millisecond)
	require.True(t, l.Allow("ip-1"), "half a window refills one token at rate 2/s")
	require.False(t, l.Allow("ip-1"))
}

func TestTokenBucket_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	l := NewPerWindow(clock, 1, time.Second, 0)

	require.True(t, l.Allow("ip-1"))
	require.False(t, l.Allow("ip-1"))
	require.True(t, l.Allow("ip-2"), "another key keeps its own bucket")
}

func TestTokenBucket_PrunesIdleBuckets(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	l := NewPerWindow(clock, 1, time.Second, time.Minute)

	require.True(t, l.Allow("ip-1"))

	clock.advance(3 * time.Minute)
	require.True(t, l.Allow("ip-2"))

	l.mu.Lock()
	_, stale := l.buckets["ip-1"]
	l.mu.Unlock()
	require.False(t, stale, "idle bucket must be pruned after TTL")
}

func TestTokenBucket_DefaultsOnBadConfig(t *testing.T) {
	t.Parallel()

	l := NewTokenBucket(nil, Config{Rate: -1, Burst: 0})
	require.Equal(t, float64(1), l.cfg.Rate)
	require.Equal(t, 1, l.cfg.Burst)
	require.True(t, l.Allow("ip-1"))
}
