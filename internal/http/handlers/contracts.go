package handlers

import (
	"context"

	"driverhub/internal/domain"
	"driverhub/internal/service/feedback"
)

// deliveriesUsecase abstracts the subset of the deliveries service the
// HTTP layer needs.
type deliveriesUsecase interface {
	List(f domain.ListFilter) []domain.Delivery
	Get(id string) (domain.Delivery, error)
	Transition(ctx context.Context, id string, next domain.DeliveryStatus) error
}

// offerUsecase abstracts the negotiator's decision surface.
type offerUsecase interface {
	Current() (domain.DeliveryOffer, bool)
	Accept(ctx context.Context) error
	Reject(ctx context.Context) error
}

// inboxUsecase abstracts the notification store.
type inboxUsecase interface {
	List() []domain.Notification
	UnreadCount() int
	Load(ctx context.Context) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// availabilityState abstracts the driver availability flag.
type availabilityState interface {
	Set(ctx context.Context, online bool)
	Online() bool
}

// toastSource exposes the currently visible transient feedback.
type toastSource interface {
	Current() (feedback.Toast, bool)
}
