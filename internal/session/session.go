package session

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"driverhub/internal/domain"
	"driverhub/internal/logx"
	"driverhub/internal/service/availability"
	"driverhub/internal/service/deliveries"
	"driverhub/internal/service/feedback"
	"driverhub/internal/service/inbox"
	"driverhub/internal/service/offer"
)

// Session is the explicitly owned scope of one signed-in driver. It
// aggregates the behavioral components the screens read from, and its
// construction/teardown follows the login/logout lifecycle instead of
// process lifetime. Nothing outside reaches into the components'
// internal collections.
type Session struct {
	DriverID string

	Deliveries   *deliveries.Service
	Offers       *offer.Negotiator
	Inbox        *inbox.Store
	Availability *availability.State
	Feedback     *feedback.Toaster

	offerDecisions *prometheus.CounterVec
	logger         logx.Logger
}

// New wires a Session. The negotiator's outcome sink is the session
// itself: every decision lands in the toaster and the decisions metric.
func New(
	driverID string,
	dels *deliveries.Service,
	ib *inbox.Store,
	avail *availability.State,
	toaster *feedback.Toaster,
	offerDecisions *prometheus.CounterVec,
	logger logx.Logger,
) *Session {
	if logger == nil {
		logger = logx.Nop()
	}
	s := &Session{
		DriverID:       driverID,
		Deliveries:     dels,
		Inbox:          ib,
		Availability:   avail,
		Feedback:       toaster,
		offerDecisions: offerDecisions,
		logger:         logger.With(logx.String("driver_id", driverID)),
	}
	s.Offers = offer.NewNegotiator(dels, s, logger)
	return s
}

// Start restores journaled deliveries and primes the inbox. A failed
// initial inbox fetch is logged, not fatal: the driver can refresh.
func (s *Session) Start(ctx context.Context) error {
	if err := s.Deliveries.Restore(ctx); err != nil {
		return fmt.Errorf("restore deliveries: %w", err)
	}
	if err := s.Inbox.Load(ctx); err != nil {
		s.logger.Warn("initial inbox load failed", logx.Err(err))
	}
	s.logger.Info("driver session started")
	return nil
}

// Close tears the session down at logout.
func (s *Session) Close() {
	s.Feedback.Close()
	s.logger.Info("driver session closed")
}

// OfferDecided implements offer.OutcomeSink: it turns each decision
// into user-visible transient feedback and a metric sample.
func (s *Session) OfferDecided(_ context.Context, out domain.OfferOutcome) {
	switch out.Kind {
	case domain.OfferAccepted:
		s.Feedback.Show(fmt.Sprintf("Delivery %s accepted", out.OrderID), feedback.KindSuccess)
	case domain.OfferRejected:
		s.Feedback.Show(fmt.Sprintf("Delivery %s rejected", out.OrderID), feedback.KindError)
	case domain.OfferExpired:
		s.Feedback.Show(fmt.Sprintf("Offer %s expired", out.OrderID), feedback.KindError)
	}
	if s.offerDecisions != nil {
		s.offerDecisions.WithLabelValues(string(out.Kind)).Inc()
	}
}
