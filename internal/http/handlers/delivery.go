package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"driverhub/internal/apperr"
	"driverhub/internal/domain"
	"driverhub/internal/logx"
)

// DeliveryHandler handles HTTP requests for the driver's deliveries.
type DeliveryHandler struct {
	usecase deliveriesUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveriesUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// List handles GET /deliveries. Accepts optional status (canonical or
// dashboard vocabulary) and batch filters.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.ListFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			writeError(h.logger, w, r, http.StatusBadRequest, "unknown status")
			return
		}
		filter.Status = status
	}
	filter.BatchID = r.URL.Query().Get("batch")

	deliveries := h.usecase.List(filter)
	resp := listDeliveriesResponse{Deliveries: make([]deliveryResponse, 0, len(deliveries))}
	for _, d := range deliveries {
		resp.Deliveries = append(resp.Deliveries, deliveryToResponse(d))
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// Get handles GET /deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.usecase.Get(id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "delivery not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// UpdateStatus handles POST /deliveries/{id}/status.
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "unknown status")
		return
	}

	err := h.usecase.Transition(r.Context(), id, status)
	switch {
	case err == nil:
		d, gerr := h.usecase.Get(id)
		if gerr != nil {
			writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(d))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "delivery not found")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
	case errors.Is(err, apperr.ErrInvalidTransition):
		writeError(h.logger, w, r, http.StatusConflict, "invalid status transition")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
