package deliveries

import (
	"context"

	"driverhub/internal/domain"
	"driverhub/internal/logx"
	"driverhub/internal/service/registry"
)

// Service wraps the pure in-memory Registry with best-effort journal
// persistence. All presentation-layer reads and mutations go through
// here; the registry itself performs no I/O.
type Service struct {
	registry *registry.Registry
	journal  journal
	logger   logx.Logger
}

// NewService creates a deliveries Service. journal may be nil, in which
// case nothing is persisted.
func NewService(reg *registry.Registry, j journal, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{registry: reg, journal: j, logger: logger}
}

// Add registers a delivery and journals it. Duplicate identifiers are
// silent no-ops in both the registry and the journal.
func (s *Service) Add(ctx context.Context, d domain.Delivery) {
	s.registry.Add(d)

	if s.journal == nil {
		return
	}
	if err := s.journal.InsertDelivery(ctx, d); err != nil {
		s.logger.Warn("delivery journal insert failed",
			logx.String("delivery_id", d.ID),
			logx.Err(err),
		)
	}
}

// Transition applies a status change and journals the new status when
// the registry accepted it.
func (s *Service) Transition(ctx context.Context, id string, next domain.DeliveryStatus) error {
	if err := s.registry.Transition(id, next); err != nil {
		return err
	}

	if s.journal != nil {
		d, err := s.registry.Get(id)
		if err == nil {
			if jerr := s.journal.UpdateStatus(ctx, id, d.Status); jerr != nil {
				s.logger.Warn("delivery journal update failed",
					logx.String("delivery_id", id),
					logx.Err(jerr),
				)
			}
		}
	}
	return nil
}

// Get returns the delivery or apperr.ErrNotFound.
func (s *Service) Get(id string) (domain.Delivery, error) {
	return s.registry.Get(id)
}

// List returns deliveries in acceptance order, optionally filtered.
func (s *Service) List(f domain.ListFilter) []domain.Delivery {
	return s.registry.List(f)
}

// Restore loads non-terminal journaled deliveries back into the
// registry, so a restarted process resumes the driver's active list.
func (s *Service) Restore(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}
	active, err := s.journal.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, d := range active {
		s.registry.Add(d)
	}
	if len(active) > 0 {
		s.logger.Info("active deliveries restored", logx.Int("count", len(active)))
	}
	return nil
}
