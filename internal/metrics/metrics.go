package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// NewOfferDecisionsTotal returns a Prometheus counter vector for offer
// decisions, labeled by outcome (accepted, rejected, expired).
func NewOfferDecisionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offer_decisions_total",
		Help: "Total number of delivery offer decisions by outcome",
	}, []string{"outcome"})
}

// NewNotificationMarkFailuresTotal returns a Prometheus counter for
// swallowed single-item mark-read failures.
func NewNotificationMarkFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_mark_failures_total",
		Help: "Total number of failed remote mark-read calls retained optimistically",
	})
}
