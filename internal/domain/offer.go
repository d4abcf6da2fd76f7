package domain

import "time"

// placeholder for delivery fields an offer payload never carries.
const UnknownField = "unknown"

// DeliveryOffer is a proposed delivery not yet accepted into the
// driver's active list. It exists only while a decision is pending.
type DeliveryOffer struct {
	DeliveryID   string
	OrderID      string
	Customer     string
	Pickup       string
	Dropoff      string
	Window       string
	DistanceKM   float64
	Instructions string
	EarningsEst  float64
	ExpiresAt    time.Time

	Batch *BatchRef
}

// ToDelivery materializes the accepted offer as a new pending Delivery.
func (o DeliveryOffer) ToDelivery(now time.Time) Delivery {
	return Delivery{
		ID:           o.DeliveryID,
		OrderID:      o.OrderID,
		Customer:     o.Customer,
		Phone:        UnknownField,
		Pickup:       o.Pickup,
		Dropoff:      o.Dropoff,
		Window:       o.Window,
		DistanceKM:   o.DistanceKM,
		Instructions: o.Instructions,
		Status:       StatusPending,
		AcceptedAt:   now,
		Batch:        o.Batch,
	}
}

// Expired reports whether the offer's decision deadline has passed.
// Offers without a deadline never expire.
func (o DeliveryOffer) Expired(now time.Time) bool {
	return !o.ExpiresAt.IsZero() && now.After(o.ExpiresAt)
}

// OfferOutcomeKind enumerates the result of an offer decision.
type OfferOutcomeKind string

// List of possible offer decision outcomes.
const (
	OfferAccepted OfferOutcomeKind = "accepted"
	OfferRejected OfferOutcomeKind = "rejected"
	OfferExpired  OfferOutcomeKind = "expired"
)

// OfferOutcome is emitted once per decided offer.
type OfferOutcome struct {
	Kind    OfferOutcomeKind
	OrderID string
}
