package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"driverhub/internal/apperr"
	"driverhub/internal/domain"
	"driverhub/internal/logx"
)

// NotificationsHandler handles HTTP requests for the notification inbox.
type NotificationsHandler struct {
	usecase inboxUsecase
	logger  logx.Logger
}

// NewNotificationsHandler creates a new NotificationsHandler.
func NewNotificationsHandler(logger logx.Logger, uc inboxUsecase) *NotificationsHandler {
	return &NotificationsHandler{usecase: uc, logger: logger}
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
	BatchID   string    `json:"batch_id,omitempty"`
	OrderID   string    `json:"order_id,omitempty"`
}

func notificationToResponse(n domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
		Read:      n.Read,
		BatchID:   n.BatchID,
		OrderID:   n.OrderID,
	}
}

type listNotificationsResponse struct {
	Notifications []notificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// List handles GET /notifications.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.usecase.List()
	resp := listNotificationsResponse{
		Notifications: make([]notificationResponse, 0, len(items)),
		UnreadCount:   h.usecase.UnreadCount(),
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, notificationToResponse(n))
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationsHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, map[string]int{"unread_count": h.usecase.UnreadCount()})
}

// Refresh handles POST /notifications/refresh: a full reload from the
// remote service.
func (h *NotificationsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.Load(r.Context()); err != nil {
		writeError(h.logger, w, r, http.StatusBadGateway, "notification service unavailable")
		return
	}
	h.List(w, r)
}

// MarkRead handles POST /notifications/{id}/read. A swallowed remote
// failure still answers 200: the optimistic local flag is the
// user-visible truth.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.usecase.MarkRead(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"result": "read"})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "notification not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// MarkAllRead handles POST /notifications/read-all. A remote failure
// here is surfaced: the store already resynchronized from the remote.
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	err := h.usecase.MarkAllRead(r.Context())
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"result": "all read"})
	case errors.Is(err, apperr.ErrMarkFailed):
		writeError(h.logger, w, r, http.StatusBadGateway, "notification service rejected bulk mark")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
