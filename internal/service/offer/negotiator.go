package offer

import (
	"context"
	"strings"
	"sync"
	"time"

	"driverhub/internal/apperr"
	"driverhub/internal/domain"
	"driverhub/internal/logx"
)

// Negotiator holds the single in-flight delivery offer and arbitrates
// the accept/reject decision. State machine: idle → offered → idle.
type Negotiator struct {
	mu      sync.Mutex
	current *domain.DeliveryOffer

	deliveries deliveryAdder
	sink       OutcomeSink
	logger     logx.Logger
	now        func() time.Time
}

// NewNegotiator creates an idle Negotiator.
func NewNegotiator(deliveries deliveryAdder, sink OutcomeSink, logger logx.Logger) *Negotiator {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Negotiator{
		deliveries: deliveries,
		sink:       sink,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Present surfaces a new offer. Precondition: the negotiator is idle.
// A second offer while one is pending reports apperr.ErrOfferPending
// and leaves the pending offer in place.
func (n *Negotiator) Present(o domain.DeliveryOffer) error {
	if strings.TrimSpace(o.DeliveryID) == "" || strings.TrimSpace(o.OrderID) == "" {
		return apperr.ErrInvalid
	}
	if o.Expired(n.now()) {
		return apperr.ErrOfferExpired
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current != nil {
		return apperr.ErrOfferPending
	}
	cp := o
	n.current = &cp

	n.logger.Info("offer presented",
		logx.String("delivery_id", o.DeliveryID),
		logx.String("order_id", o.OrderID),
		logx.Float64("earnings_est", o.EarningsEst),
	)
	return nil
}

// Accept materializes the pending offer as a new pending delivery,
// returns to idle and emits an accepted outcome. With no pending offer
// this is a silent no-op. Accepting an offer whose decision deadline
// has passed discards it and emits an expired outcome instead.
func (n *Negotiator) Accept(ctx context.Context) error {
	o, ok := n.take()
	if !ok {
		return nil
	}

	if o.Expired(n.now()) {
		n.logger.Warn("offer expired before acceptance", logx.String("order_id", o.OrderID))
		n.emit(ctx, domain.OfferOutcome{Kind: domain.OfferExpired, OrderID: o.OrderID})
		return apperr.ErrOfferExpired
	}

	n.deliveries.Add(ctx, o.ToDelivery(n.now()))
	n.logger.Info("offer accepted",
		logx.String("delivery_id", o.DeliveryID),
		logx.String("order_id", o.OrderID),
	)
	n.emit(ctx, domain.OfferOutcome{Kind: domain.OfferAccepted, OrderID: o.OrderID})
	return nil
}

// Reject discards the pending offer, returns to idle and emits a
// rejected outcome. With no pending offer this is a silent no-op.
func (n *Negotiator) Reject(ctx context.Context) error {
	o, ok := n.take()
	if !ok {
		return nil
	}

	n.logger.Info("offer rejected", logx.String("order_id", o.OrderID))
	n.emit(ctx, domain.OfferOutcome{Kind: domain.OfferRejected, OrderID: o.OrderID})
	return nil
}

// Current returns the pending offer, if any.
func (n *Negotiator) Current() (domain.DeliveryOffer, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return domain.DeliveryOffer{}, false
	}
	return *n.current, true
}

// take atomically removes and returns the pending offer, so a decision
// is made at most once even under concurrent accept/reject.
func (n *Negotiator) take() (domain.DeliveryOffer, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return domain.DeliveryOffer{}, false
	}
	o := *n.current
	n.current = nil
	return o, true
}

func (n *Negotiator) emit(ctx context.Context, out domain.OfferOutcome) {
	if n.sink != nil {
		n.sink.OfferDecided(ctx, out)
	}
}
