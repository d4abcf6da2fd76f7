package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"driverhub/internal/domain"
)

// Client is an HTTP JSON client for the remote notification service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a notification service client. The timeout bounds
// every individual call.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// StatusError reports a non-2xx response from the notification service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("notification service returned %d", e.Code)
}

type notificationDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
	BatchID   string    `json:"batch_id,omitempty"`
	OrderID   string    `json:"order_id,omitempty"`
}

func toDomain(dto notificationDTO) domain.Notification {
	return domain.Notification{
		ID:        dto.ID,
		Type:      domain.NotificationType(dto.Type).Normalize(),
		Title:     dto.Title,
		Body:      dto.Body,
		CreatedAt: dto.CreatedAt,
		Read:      dto.Read,
		BatchID:   dto.BatchID,
		OrderID:   dto.OrderID,
	}
}

type listResponse struct {
	Notifications []notificationDTO `json:"notifications"`
}

type markAllResponse struct {
	UpdatedCount int `json:"updated_count"`
}

// FetchNotifications fetches a page of the driver's inbox, most recent first.
func (c *Client) FetchNotifications(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	url := c.baseURL + "/v1/driver/notifications?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)

	var resp listResponse
	if err := c.doJSON(ctx, http.MethodGet, url, &resp); err != nil {
		return nil, fmt.Errorf("notifications gateway: fetch: %w", err)
	}

	out := make([]domain.Notification, 0, len(resp.Notifications))
	for _, dto := range resp.Notifications {
		out = append(out, toDomain(dto))
	}
	return out, nil
}

// MarkRead acknowledges a single notification as read.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	url := c.baseURL + "/v1/driver/notifications/" + id + "/read"
	if err := c.doJSON(ctx, http.MethodPost, url, nil); err != nil {
		return fmt.Errorf("notifications gateway: mark read %q: %w", id, err)
	}
	return nil
}

// MarkAllRead acknowledges the whole inbox and returns the number of
// entries the service updated.
func (c *Client) MarkAllRead(ctx context.Context) (int, error) {
	url := c.baseURL + "/v1/driver/notifications/read-all"

	var resp markAllResponse
	if err := c.doJSON(ctx, http.MethodPost, url, &resp); err != nil {
		return 0, fmt.Errorf("notifications gateway: mark all read: %w", err)
	}
	return resp.UpdatedCount, nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	if dst == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
