package handlers

import (
	"net/http"

	"driverhub/internal/logx"
)

// AvailabilityHandler handles HTTP requests for the driver's
// availability flag, and exposes the current transient feedback.
type AvailabilityHandler struct {
	state  availabilityState
	toasts toastSource
	logger logx.Logger
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(logger logx.Logger, state availabilityState, toasts toastSource) *AvailabilityHandler {
	return &AvailabilityHandler{state: state, toasts: toasts, logger: logger}
}

type availabilityRequest struct {
	Online bool `json:"online"`
}

type availabilityResponse struct {
	Online bool `json:"online"`
}

// Get handles GET /availability.
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, availabilityResponse{Online: h.state.Online()})
}

// Put handles PUT /availability. The body carries the switch's new
// value; the toggle always succeeds.
func (h *AvailabilityHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	h.state.Set(r.Context(), req.Online)
	writeJSON(h.logger, w, r, http.StatusOK, availabilityResponse{Online: h.state.Online()})
}

type toastResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// Toast handles GET /toast and returns 204 while nothing is visible.
func (h *AvailabilityHandler) Toast(w http.ResponseWriter, r *http.Request) {
	t, visible := h.toasts.Current()
	if !visible {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toastResponse{
		Message: t.Message,
		Kind:    string(t.Kind),
	})
}
