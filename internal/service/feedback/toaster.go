package feedback

import (
	"sync"
	"time"

	"driverhub/internal/logx"
)

// Kind classifies a toast.
type Kind string

// List of possible toast kinds.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is a short-lived, non-blocking confirmation message.
type Toast struct {
	Message string
	Kind    Kind
	ShownAt time.Time
}

// stopper matches *time.Timer's Stop.
type stopper interface {
	Stop() bool
}

// Toaster presents at most one toast at a time. A new Show replaces the
// visible toast immediately; each toast is dismissed automatically
// after a fixed dwell period. There is no user-dismiss action.
type Toaster struct {
	mu      sync.Mutex
	current *Toast
	gen     uint64
	timer   stopper

	dwell  time.Duration
	logger logx.Logger

	// scheduling seam for tests
	afterFunc func(d time.Duration, f func()) stopper
	now       func() time.Time
}

// NewToaster creates a Toaster with the given dwell period.
func NewToaster(dwell time.Duration, logger logx.Logger) *Toaster {
	if dwell <= 0 {
		dwell = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Toaster{
		dwell:  dwell,
		logger: logger,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
}

// Show makes the toast visible immediately, superseding any active one
// and its pending dismissal.
func (t *Toaster) Show(message string, kind Kind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.current = &Toast{Message: message, Kind: kind, ShownAt: t.now()}
	t.timer = t.afterFunc(t.dwell, func() { t.dismiss(gen) })

	t.logger.Debug("toast shown",
		logx.String("kind", string(kind)),
		logx.String("message", message),
	)
}

// dismiss clears the toast unless a newer Show superseded it.
func (t *Toaster) dismiss(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.gen != gen {
		return
	}
	t.current = nil
	t.timer = nil
}

// Current returns the visible toast, if any.
func (t *Toaster) Current() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return Toast{}, false
	}
	return *t.current, true
}

// Close cancels the pending dismissal timer and clears the toast.
func (t *Toaster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.current = nil
}
