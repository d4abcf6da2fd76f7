package handlers

import (
	"time"

	"driverhub/internal/domain"
)

type batchResponse struct {
	ID         string `json:"id"`
	Stop       int    `json:"stop"`
	TotalStops int    `json:"total_stops"`
}

type deliveryResponse struct {
	ID              string         `json:"id"`
	OrderID         string         `json:"order_id"`
	Customer        string         `json:"customer"`
	Phone           string         `json:"phone"`
	Pickup          string         `json:"pickup"`
	Dropoff         string         `json:"dropoff"`
	Window          string         `json:"window,omitempty"`
	DistanceKM      float64        `json:"distance_km,omitempty"`
	Instructions    string         `json:"instructions,omitempty"`
	Status          string         `json:"status"`
	DashboardStatus string         `json:"dashboard_status"`
	AcceptedAt      time.Time      `json:"accepted_at"`
	Batch           *batchResponse `json:"batch,omitempty"`
}

func deliveryToResponse(d domain.Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:              d.ID,
		OrderID:         d.OrderID,
		Customer:        d.Customer,
		Phone:           d.Phone,
		Pickup:          d.Pickup,
		Dropoff:         d.Dropoff,
		Window:          d.Window,
		DistanceKM:      d.DistanceKM,
		Instructions:    d.Instructions,
		Status:          string(d.Status),
		DashboardStatus: d.Status.DashboardStatus(),
		AcceptedAt:      d.AcceptedAt,
	}
	if d.Batch != nil {
		resp.Batch = &batchResponse{
			ID:         d.Batch.ID,
			Stop:       d.Batch.Stop,
			TotalStops: d.Batch.TotalStops,
		}
	}
	return resp
}

type listDeliveriesResponse struct {
	Deliveries []deliveryResponse `json:"deliveries"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}
