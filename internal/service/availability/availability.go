package availability

import (
	"context"
	"sync"

	"driverhub/internal/logx"
)

// State holds the driver's online/offline flag for the session. The
// flag is set absolutely by the UI switch's new value, never flipped
// relative to the previous one.
type State struct {
	mu     sync.RWMutex
	online bool

	driverID string
	presence presencePublisher
	logger   logx.Logger
}

// NewState creates an offline State. presence may be nil.
func NewState(driverID string, presence presencePublisher, logger logx.Logger) *State {
	if logger == nil {
		logger = logx.Nop()
	}
	return &State{driverID: driverID, presence: presence, logger: logger}
}

// Set stores the target availability and broadcasts it. The local
// toggle always succeeds; a presence publish failure is only logged.
func (s *State) Set(ctx context.Context, online bool) {
	s.mu.Lock()
	changed := s.online != online
	s.online = online
	s.mu.Unlock()

	if changed {
		s.logger.Info("driver availability changed",
			logx.String("driver_id", s.driverID),
			logx.Bool("online", online),
		)
	}

	if s.presence == nil {
		return
	}
	if err := s.presence.Publish(ctx, s.driverID, online); err != nil {
		s.logger.Warn("presence publish failed",
			logx.String("driver_id", s.driverID),
			logx.Bool("online", online),
			logx.Err(err),
		)
	}
}

// Online returns the current availability flag.
func (s *State) Online() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}
