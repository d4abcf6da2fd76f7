package domain

import "time"

// Delivery - struct representing a delivery assigned to the driver.
type Delivery struct {
	ID           string
	OrderID      string
	Customer     string
	Phone        string
	Pickup       string
	Dropoff      string
	Window       string
	DistanceKM   float64
	Instructions string
	Status       DeliveryStatus
	AcceptedAt   time.Time

	// Batch is nil for standalone deliveries.
	Batch *BatchRef
}

// BatchRef places a delivery as one stop within a multi-stop batch.
type BatchRef struct {
	ID         string
	Stop       int
	TotalStops int
}

// ListFilter constrains Registry.List. Zero values mean "no constraint".
type ListFilter struct {
	Status  DeliveryStatus
	BatchID string
}
