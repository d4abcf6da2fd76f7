package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Presence broadcasts driver availability to the dispatch backend as a
// TTL'd Redis key. Dispatch treats an absent or expired key as offline,
// so a crashed client goes dark on its own.
type Presence struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPresence creates a Presence publisher. Returns nil when client is
// nil, which disables broadcasting.
func NewPresence(client *redis.Client, ttl time.Duration) *Presence {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 90 * time.Second
	}
	return &Presence{rdb: client, ttl: ttl}
}

func presenceKey(driverID string) string {
	return "dispatch:driver:" + driverID + ":online"
}

// Publish writes (or clears) the driver's presence key.
func (p *Presence) Publish(ctx context.Context, driverID string, online bool) error {
	key := presenceKey(driverID)
	if online {
		if err := p.rdb.Set(ctx, key, "1", p.ttl).Err(); err != nil {
			return fmt.Errorf("presence set %q: %w", key, err)
		}
		return nil
	}
	if err := p.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("presence del %q: %w", key, err)
	}
	return nil
}

// Online reports whether the driver currently has a live presence key.
func (p *Presence) Online(ctx context.Context, driverID string) (bool, error) {
	n, err := p.rdb.Exists(ctx, presenceKey(driverID)).Result()
	if err != nil {
		return false, fmt.Errorf("presence exists: %w", err)
	}
	return n > 0, nil
}
