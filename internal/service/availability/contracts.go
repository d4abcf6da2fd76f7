package availability

import "context"

// presencePublisher broadcasts the driver's availability to the
// dispatch backend. Publishing is best-effort; failures never fail the
// local toggle.
type presencePublisher interface {
	Publish(ctx context.Context, driverID string, online bool) error
}
