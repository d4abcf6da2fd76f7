package domain

import "time"

// NotificationType represents the kind of inbox notification.
type NotificationType string

// List of recognized notification types. Payloads with any other type
// fall back to TypeDefault.
const (
	TypeBatchAssigned      NotificationType = "batch_assigned"
	TypeBatchUpdated       NotificationType = "batch_updated"
	TypeBatchCancelled     NotificationType = "batch_cancelled"
	TypeOrderReady         NotificationType = "order_ready"
	TypeOrderPickedUp      NotificationType = "order_picked_up"
	TypeOrderOutForDeliver NotificationType = "order_out_for_delivery"
	TypeOrderDelivered     NotificationType = "order_delivered"
	TypeOrderFailed        NotificationType = "order_failed"
	TypeDefault            NotificationType = "default"
)

var allowedNotificationTypes = [...]NotificationType{
	TypeBatchAssigned, TypeBatchUpdated, TypeBatchCancelled,
	TypeOrderReady, TypeOrderPickedUp, TypeOrderOutForDeliver,
	TypeOrderDelivered, TypeOrderFailed,
}

// Valid checks if the NotificationType is a recognized value.
func (t NotificationType) Valid() bool {
	for _, v := range allowedNotificationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Normalize maps unrecognized types onto TypeDefault.
func (t NotificationType) Normalize() NotificationType {
	if t.Valid() {
		return t
	}
	return TypeDefault
}

// Notification is a single inbox entry. The remote notification service
// owns creation; the read flag is the only locally mutated field.
type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Body      string
	CreatedAt time.Time
	Read      bool
	BatchID   string
	OrderID   string
}
