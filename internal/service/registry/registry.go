package registry

import (
	"sync"

	"driverhub/internal/apperr"
	"driverhub/internal/domain"
	"driverhub/internal/logx"
)

// Registry is the single source of truth for the deliveries assigned to
// the driver in this session. Entries are never removed, only moved to
// a terminal status. No I/O happens here.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Delivery
	order  []string // insertion order, i.e. acceptance order
	logger logx.Logger
}

// New creates an empty Registry.
func New(logger logx.Logger) *Registry {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Registry{
		byID:   make(map[string]*domain.Delivery),
		logger: logger,
	}
}

// Add inserts a new delivery. A repeated identifier is a silent no-op:
// the first call's fields are retained, so duplicate offers never create
// duplicate entries. An empty status defaults to pending.
func (r *Registry) Add(d domain.Delivery) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; exists {
		r.logger.Debug("duplicate delivery ignored", logx.String("delivery_id", d.ID))
		return
	}
	if d.Status == "" {
		d.Status = domain.StatusPending
	}
	cp := d
	r.byID[d.ID] = &cp
	r.order = append(r.order, d.ID)

	r.logger.Info("delivery added",
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("status", string(d.Status)),
	)
}

// Transition applies a status change to the identified delivery.
//
// Unknown identifiers report apperr.ErrNotFound and mutate nothing.
// Same-status and terminal-state calls are idempotent no-ops returning
// nil (the entry is left unchanged). Backward moves among non-terminal
// statuses report apperr.ErrInvalidTransition.
func (r *Registry) Transition(id string, next domain.DeliveryStatus) error {
	if !next.Valid() {
		return apperr.ErrInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return apperr.ErrNotFound
	}
	if d.Status == next || d.Status.Terminal() {
		return nil
	}
	if !d.Status.CanTransition(next) {
		return apperr.ErrInvalidTransition
	}

	prev := d.Status
	d.Status = next

	r.logger.Info("delivery status changed",
		logx.String("delivery_id", id),
		logx.String("from", string(prev)),
		logx.String("to", string(next)),
	)
	return nil
}

// Get returns a copy of the delivery, or apperr.ErrNotFound.
func (r *Registry) Get(id string) (domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return domain.Delivery{}, apperr.ErrNotFound
	}
	return *d, nil
}

// List returns copies of the deliveries in insertion order, optionally
// constrained by status or batch identifier.
func (r *Registry) List(f domain.ListFilter) []domain.Delivery {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Delivery, 0, len(r.order))
	for _, id := range r.order {
		d := r.byID[id]
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.BatchID != "" && (d.Batch == nil || d.Batch.ID != f.BatchID) {
			continue
		}
		out = append(out, *d)
	}
	return out
}

// Len returns the number of registered deliveries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
