package deliveries

import (
	"context"

	"driverhub/internal/domain"
)

// journal abstracts write-through persistence of the session's
// deliveries. The in-memory registry stays authoritative; journal
// failures never fail the caller.
type journal interface {
	InsertDelivery(ctx context.Context, d domain.Delivery) error
	UpdateStatus(ctx context.Context, id string, status domain.DeliveryStatus) error
	ListActive(ctx context.Context) ([]domain.Delivery, error)
}
