package ratelimit

import (
	"sync"
	"time"
)

// Config stores TokenBucket settings.
type Config struct {
	Rate  float64       // tokens refilled per second
	Burst int           // bucket capacity
	TTL   time.Duration // idle buckets older than this are pruned (0 disables)
}

// TokenBucket is a per-key token bucket limiter.
type TokenBucket struct {
	cfg   Config
	clock Clock

	mu      sync.Mutex
	buckets map[string]*bucket
	pruned  time.Time
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewTokenBucket creates a limiter with explicit config and injected clock.
func NewTokenBucket(clock Clock, cfg Config) *TokenBucket {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &TokenBucket{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// NewPerWindow is a convenience ctor for "limit per window".
func NewPerWindow(clock Clock, limit int, window, ttl time.Duration) *TokenBucket {
	if window <= 0 {
		window = time.Second
	}
	if limit <= 0 {
		limit = 1
	}
	return NewTokenBucket(clock, Config{
		Rate:  float64(limit) / window.Seconds(),
		Burst: limit,
		TTL:   ttl,
	})
}

// Allow reports whether key may proceed, consuming one token when it can.
func (l *TokenBucket) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.maybePrune(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Burst), seen: now}
		l.buckets[key] = b
	}

	if dt := now.Sub(b.seen); dt > 0 {
		b.tokens += dt.Seconds() * l.cfg.Rate
		if max := float64(l.cfg.Burst); b.tokens > max {
			b.tokens = max
		}
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// maybePrune drops buckets idle longer than TTL. Caller holds mu.
func (l *TokenBucket) maybePrune(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}

	interval := time.Minute
	if half := l.cfg.TTL / 2; half > interval {
		interval = half
	}
	if !l.pruned.IsZero() && now.Sub(l.pruned) < interval {
		return
	}
	l.pruned = now

	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.cfg.TTL {
			delete(l.buckets, k)
		}
	}
}
