package handlers

import (
	"errors"
	"net/http"
	"time"

	"driverhub/internal/apperr"
	"driverhub/internal/domain"
	"driverhub/internal/logx"
)

// OfferHandler handles HTTP requests for the in-flight delivery offer.
type OfferHandler struct {
	usecase offerUsecase
	logger  logx.Logger
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(logger logx.Logger, uc offerUsecase) *OfferHandler {
	return &OfferHandler{usecase: uc, logger: logger}
}

type offerResponse struct {
	DeliveryID   string    `json:"delivery_id"`
	OrderID      string    `json:"order_id"`
	Customer     string    `json:"customer"`
	Pickup       string    `json:"pickup"`
	Dropoff      string    `json:"dropoff"`
	Window       string    `json:"window,omitempty"`
	DistanceKM   float64   `json:"distance_km,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	EarningsEst  float64   `json:"earnings_est"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

func offerToResponse(o domain.DeliveryOffer) offerResponse {
	return offerResponse{
		DeliveryID:   o.DeliveryID,
		OrderID:      o.OrderID,
		Customer:     o.Customer,
		Pickup:       o.Pickup,
		Dropoff:      o.Dropoff,
		Window:       o.Window,
		DistanceKM:   o.DistanceKM,
		Instructions: o.Instructions,
		EarningsEst:  o.EarningsEst,
		ExpiresAt:    o.ExpiresAt,
	}
}

// Current handles GET /offer. Returns 404 while the negotiator is idle.
func (h *OfferHandler) Current(w http.ResponseWriter, r *http.Request) {
	o, ok := h.usecase.Current()
	if !ok {
		writeError(h.logger, w, r, http.StatusNotFound, "no pending offer")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, offerToResponse(o))
}

// Accept handles POST /offer/accept. With no pending offer the decision
// is a no-op and the response says so.
func (h *OfferHandler) Accept(w http.ResponseWriter, r *http.Request) {
	err := h.usecase.Accept(r.Context())
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"result": "accepted"})
	case errors.Is(err, apperr.ErrOfferExpired):
		writeError(h.logger, w, r, http.StatusConflict, "offer expired")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Reject handles POST /offer/reject.
func (h *OfferHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.Reject(r.Context()); err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"result": "rejected"})
}
