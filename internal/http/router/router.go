package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"driverhub/internal/http/handlers"
	mw "driverhub/internal/http/middleware"
	"driverhub/internal/logx"
)

// Deps collects everything the router mounts.
type Deps struct {
	Logger        logx.Logger
	Base          *handlers.Handlers
	Deliveries    *handlers.DeliveryHandler
	Offers        *handlers.OfferHandler
	Notifications *handlers.NotificationsHandler
	Availability  *handlers.AvailabilityHandler

	// MarkLimit throttles the notification mark endpoints; nil disables.
	MarkLimit func(http.Handler) http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))
	r.Use(mw.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/deliveries", func(r chi.Router) {
		r.Get("/", d.Deliveries.List)
		r.Get("/{id}", d.Deliveries.Get)
		r.Post("/{id}/status", d.Deliveries.UpdateStatus)
	})

	r.Route("/offer", func(r chi.Router) {
		r.Get("/", d.Offers.Current)
		r.Post("/accept", d.Offers.Accept)
		r.Post("/reject", d.Offers.Reject)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", d.Notifications.List)
		r.Get("/unread-count", d.Notifications.UnreadCount)
		r.Post("/refresh", d.Notifications.Refresh)

		r.Group(func(r chi.Router) {
			if d.MarkLimit != nil {
				r.Use(d.MarkLimit)
			}
			r.Post("/{id}/read", d.Notifications.MarkRead)
			r.Post("/read-all", d.Notifications.MarkAllRead)
		})
	})

	r.Get("/availability", d.Availability.Get)
	r.Put("/availability", d.Availability.Put)
	r.Get("/toast", d.Availability.Toast)

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
