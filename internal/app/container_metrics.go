package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"driverhub/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal        prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal           prometheus.Counter `name:"gateway_retries_total"`
	NotificationMarkFailuresTotal prometheus.Counter `name:"notification_mark_failures_total"`
	OfferDecisionsTotal           *prometheus.CounterVec
}

// provideMetrics registers the service counters on the default
// registerer. Re-registering (tests build several containers) yields
// the already registered collector instead of failing.
func provideMetrics() (metricsOut, error) {
	rl, err := registerCounter(metrics.NewRateLimitExceededTotal(), "rate_limit_exceeded_total")
	if err != nil {
		return metricsOut{}, err
	}
	gr, err := registerCounter(metrics.NewGatewayRetriesTotal(), "gateway_retries_total")
	if err != nil {
		return metricsOut{}, err
	}
	mf, err := registerCounter(metrics.NewNotificationMarkFailuresTotal(), "notification_mark_failures_total")
	if err != nil {
		return metricsOut{}, err
	}
	od, err := registerCounterVec(metrics.NewOfferDecisionsTotal(), "offer_decisions_total")
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		RateLimitExceededTotal:        rl,
		GatewayRetriesTotal:           gr,
		NotificationMarkFailuresTotal: mf,
		OfferDecisionsTotal:           od,
	}, nil
}

func registerCounter(c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func registerCounterVec(c *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
