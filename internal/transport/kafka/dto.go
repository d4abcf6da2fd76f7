package kafka

import (
	"strings"
	"time"

	"driverhub/internal/domain"
)

// OfferEventDTO is the wire shape of a delivery offer pushed by dispatch.
type OfferEventDTO struct {
	DeliveryID   string    `json:"delivery_id"`
	OrderID      string    `json:"order_id"`
	Customer     string    `json:"customer"`
	Pickup       string    `json:"pickup"`
	Dropoff      string    `json:"dropoff"`
	Window       string    `json:"window"`
	DistanceKM   float64   `json:"distance_km"`
	Instructions string    `json:"instructions"`
	EarningsEst  float64   `json:"earnings_est"`
	ExpiresAt    time.Time `json:"expires_at"`
	BatchID      string    `json:"batch_id,omitempty"`
	BatchStop    int       `json:"batch_stop,omitempty"`
	BatchTotal   int       `json:"batch_total,omitempty"`
}

// ToDomain converts OfferEventDTO to a domain.DeliveryOffer.
func ToDomain(dto OfferEventDTO) domain.DeliveryOffer {
	o := domain.DeliveryOffer{
		DeliveryID:   strings.TrimSpace(dto.DeliveryID),
		OrderID:      strings.TrimSpace(dto.OrderID),
		Customer:     dto.Customer,
		Pickup:       dto.Pickup,
		Dropoff:      dto.Dropoff,
		Window:       dto.Window,
		DistanceKM:   dto.DistanceKM,
		Instructions: dto.Instructions,
		EarningsEst:  dto.EarningsEst,
		ExpiresAt:    dto.ExpiresAt,
	}
	if dto.BatchID != "" {
		o.Batch = &domain.BatchRef{
			ID:         dto.BatchID,
			Stop:       dto.BatchStop,
			TotalStops: dto.BatchTotal,
		}
	}
	return o
}
