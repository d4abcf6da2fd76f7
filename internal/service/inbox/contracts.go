//go:generate mockgen -source=contracts.go -destination=inbox_mocks_test.go -package=inbox_test

package inbox

import (
	"context"

	"driverhub/internal/domain"
)

// RemoteGateway is the remote notification service: the authoritative
// source of inbox entries and read-state acknowledgments. All three
// calls are fallible network calls.
type RemoteGateway interface {
	FetchNotifications(ctx context.Context, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (updated int, err error)
}

// counter abstracts a metrics counter.
type counter interface {
	Inc()
}
