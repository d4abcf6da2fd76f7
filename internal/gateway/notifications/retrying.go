package notifications

import (
	"context"
	"errors"
	"net"
	"time"

	"driverhub/internal/domain"
	"driverhub/internal/logx"
)

type gateway interface {
	FetchNotifications(ctx context.Context, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes the RetryingGateway backoff policy.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway decorates a notification gateway with bounded
// retries. The inbox store itself never retries; this is the boundary
// policy applied around the network client.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway wraps next with retry behavior. Returns nil when
// next is nil.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// FetchNotifications retries the underlying fetch on transient failures.
func (g *RetryingGateway) FetchNotifications(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := g.retry(ctx, "FetchNotifications", func() error {
		var err error
		out, err = g.next.FetchNotifications(ctx, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead retries the underlying single mark on transient failures.
func (g *RetryingGateway) MarkRead(ctx context.Context, id string) error {
	return g.retry(ctx, "MarkRead", func() error {
		return g.next.MarkRead(ctx, id)
	})
}

// MarkAllRead retries the underlying bulk mark on transient failures.
func (g *RetryingGateway) MarkAllRead(ctx context.Context) (int, error) {
	var updated int
	err := g.retry(ctx, "MarkAllRead", func() error {
		var err error
		updated, err = g.next.MarkAllRead(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (g *RetryingGateway) retry(ctx context.Context, method string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("notifications gateway retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// isRetryable classifies transient failures: throttling and upstream
// unavailability statuses, plus network timeouts.
func isRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case 429, 502, 503, 504:
			return true
		default:
			return false
		}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
