package offer

import (
	"context"

	"driverhub/internal/domain"
)

// deliveryAdder abstracts the subset of the deliveries service the
// negotiator needs when an offer is accepted.
type deliveryAdder interface {
	Add(ctx context.Context, d domain.Delivery)
}

// OutcomeSink receives exactly one outcome per decided offer.
type OutcomeSink interface {
	OfferDecided(ctx context.Context, outcome domain.OfferOutcome)
}
