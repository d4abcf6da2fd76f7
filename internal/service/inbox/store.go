package inbox

import (
	"context"
	"fmt"
	"sync"

	"driverhub/internal/apperr"
	"driverhub/internal/domain"
	"driverhub/internal/logx"
)

// Store maintains the notification inbox and keeps local read-state
// consistent with the remote authority under an optimistic-update
// protocol. Optimistic mutations commit before any remote call; remote
// calls are issued outside the lock.
type Store struct {
	mu    sync.RWMutex
	items []domain.Notification
	index map[string]int

	gateway      RemoteGateway
	pageLimit    int
	logger       logx.Logger
	markFailures counter
}

// NewStore creates an empty Store. markFailures may be nil.
func NewStore(gateway RemoteGateway, pageLimit int, logger logx.Logger, markFailures counter) *Store {
	if pageLimit <= 0 {
		pageLimit = 50
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Store{
		gateway:      gateway,
		pageLimit:    pageLimit,
		index:        make(map[string]int),
		logger:       logger,
		markFailures: markFailures,
	}
}

// Load replaces the entire local collection with a fresh remote fetch
// (most recent first). On failure the previous collection is retained
// unchanged and apperr.ErrFetchFailed is reported.
func (s *Store) Load(ctx context.Context) error {
	fetched, err := s.gateway.FetchNotifications(ctx, s.pageLimit, 0)
	if err != nil {
		s.logger.Error("notification fetch failed", logx.Err(err))
		return fmt.Errorf("%w: %v", apperr.ErrFetchFailed, err)
	}

	items := make([]domain.Notification, len(fetched))
	index := make(map[string]int, len(fetched))
	for i, n := range fetched {
		n.Type = n.Type.Normalize()
		items[i] = n
		index[n.ID] = i
	}

	s.mu.Lock()
	s.items = items
	s.index = index
	s.mu.Unlock()

	s.logger.Info("notifications loaded", logx.Int("count", len(items)))
	return nil
}

// MarkRead sets the local read flag first, then confirms with the
// remote service. An already-read entry issues no remote call. A
// remote failure is logged and counted but deliberately not rolled
// back: the optimistic local flag stays the user-visible truth.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}
	if s.items[i].Read {
		s.mu.Unlock()
		return nil
	}
	s.items[i].Read = true
	s.mu.Unlock()

	if err := s.gateway.MarkRead(ctx, id); err != nil {
		s.logger.Warn("remote mark-read failed, keeping optimistic state",
			logx.String("notification_id", id),
			logx.Err(err),
		)
		if s.markFailures != nil {
			s.markFailures.Inc()
		}
	}
	return nil
}

// MarkAllRead optimistically marks every entry read, then issues one
// remote bulk call. Unlike MarkRead, a remote failure here rolls back
// by resynchronizing from the authoritative source, and the failure is
// surfaced to the caller.
func (s *Store) MarkAllRead(ctx context.Context) error {
	s.mu.Lock()
	for i := range s.items {
		s.items[i].Read = true
	}
	s.mu.Unlock()

	updated, err := s.gateway.MarkAllRead(ctx)
	if err != nil {
		s.logger.Error("remote mark-all-read failed, resynchronizing", logx.Err(err))
		if lerr := s.Load(ctx); lerr != nil {
			s.logger.Error("resynchronization after bulk mark failed", logx.Err(lerr))
		}
		return fmt.Errorf("%w: %v", apperr.ErrMarkFailed, err)
	}

	s.logger.Info("notifications marked read", logx.Int("updated", updated))
	return nil
}

// UnreadCount recomputes the number of unread entries on demand.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for i := range s.items {
		if !s.items[i].Read {
			n++
		}
	}
	return n
}

// List returns a copy of the inbox in fetch order (most recent first).
func (s *Store) List() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Notification(nil), s.items...)
}
