package domain

// DeliveryStatus represents the lifecycle status of a delivery.
type DeliveryStatus string

// Canonical delivery statuses. The dashboard renders a contracted
// vocabulary, see DashboardStatus.
const (
	StatusPending    DeliveryStatus = "pending"
	StatusPickedUp   DeliveryStatus = "picked_up"
	StatusInProgress DeliveryStatus = "in_progress"
	StatusDelivered  DeliveryStatus = "delivered"
	StatusFailed     DeliveryStatus = "failed"
	StatusCancelled  DeliveryStatus = "cancelled"
)

var allowedStatuses = [...]DeliveryStatus{
	StatusPending, StatusPickedUp, StatusInProgress,
	StatusDelivered, StatusFailed, StatusCancelled,
}

// Valid checks if the DeliveryStatus is one of the canonical values.
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusCancelled
}

// progression orders the happy-path statuses; failed/cancelled sit outside it.
var progression = map[DeliveryStatus]int{
	StatusPending:    0,
	StatusPickedUp:   1,
	StatusInProgress: 2,
	StatusDelivered:  3,
}

// CanTransition reports whether moving from s to next is a legal
// lifecycle step. Forward moves along the happy path may skip stages
// (the dashboard vocabulary has no picked_up). failed and cancelled are
// reachable from any non-terminal status. Terminal and same-status
// moves are not transitions at all; callers treat them as no-ops.
func (s DeliveryStatus) CanTransition(next DeliveryStatus) bool {
	if s.Terminal() || s == next {
		return false
	}
	if next == StatusFailed || next == StatusCancelled {
		return true
	}
	from, okFrom := progression[s]
	to, okTo := progression[next]
	return okFrom && okTo && to > from
}

// DashboardStatus maps the canonical vocabulary onto the contracted
// four-value set used by dashboard list views.
func (s DeliveryStatus) DashboardStatus() string {
	switch s {
	case StatusPickedUp, StatusInProgress:
		return "in_progress"
	case StatusDelivered:
		return "completed"
	default:
		return string(s)
	}
}

// ParseStatus maps an incoming status string, accepting both the
// canonical and the dashboard vocabulary ("completed" → delivered).
func ParseStatus(raw string) (DeliveryStatus, bool) {
	if raw == "completed" {
		return StatusDelivered, true
	}
	s := DeliveryStatus(raw)
	if s.Valid() {
		return s, true
	}
	return "", false
}
