package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"driverhub/internal/config"
	"driverhub/internal/domain"
	"driverhub/internal/gateway/dispatch"
	"driverhub/internal/gateway/notifications"
	"driverhub/internal/http/debugserver"
	"driverhub/internal/http/handlers"
	"driverhub/internal/http/middleware/ratelimit"
	"driverhub/internal/http/router"
	"driverhub/internal/logx"
	"driverhub/internal/repository"
	"driverhub/internal/service/availability"
	"driverhub/internal/service/deliveries"
	"driverhub/internal/service/feedback"
	"driverhub/internal/service/inbox"
	"driverhub/internal/service/registry"
	"driverhub/internal/session"
	"driverhub/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGateways(container); err != nil {
		return nil, fmt.Errorf("gateways: %w", err)
	}
	if err := registerServices(container); err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}
	if err := registerTransport(container); err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
		provideMetrics,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container,
		providerDB,
		repository.NewJournalRepo,
	)
}

type notificationsGatewayIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newNotificationsGateway(in notificationsGatewayIn) *notifications.RetryingGateway {
	nc := in.Cfg.Notifications
	client := notifications.NewClient(nc.BaseURL, nc.Timeout)
	return notifications.NewRetryingGateway(client, in.Logger, in.Retries, notifications.RetryConfig{
		MaxAttempts: nc.MaxAttempts,
		BaseDelay:   nc.BaseDelay,
		MaxDelay:    nc.MaxDelay,
	})
}

func registerGateways(container *dig.Container) error {
	return provideAll(container,
		newNotificationsGateway,
		func(cfg *config.Config) *redis.Client {
			if cfg.Redis.Addr == "" {
				return nil
			}
			return redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		},
		func(cfg *config.Config, client *redis.Client) *dispatch.Presence {
			return dispatch.NewPresence(client, cfg.Redis.PresenceTTL)
		},
	)
}

type inboxIn struct {
	dig.In

	Cfg          *config.Config
	Gateway      *notifications.RetryingGateway
	Logger       logx.Logger
	MarkFailures prometheus.Counter `name:"notification_mark_failures_total"`
}

func newInboxStore(in inboxIn) *inbox.Store {
	return inbox.NewStore(in.Gateway, in.Cfg.Notifications.PageLimit, in.Logger, in.MarkFailures)
}

func registerServices(container *dig.Container) error {
	return provideAll(container,
		registry.New,
		func(reg *registry.Registry, repo *repository.JournalRepo, logger logx.Logger) *deliveries.Service {
			return deliveries.NewService(reg, repo, logger)
		},
		newInboxStore,
		func(cfg *config.Config, p *dispatch.Presence, logger logx.Logger) *availability.State {
			// a typed-nil Presence must not reach the interface field
			if p == nil {
				return availability.NewState(cfg.DriverID, nil, logger)
			}
			return availability.NewState(cfg.DriverID, p, logger)
		},
		func(cfg *config.Config, logger logx.Logger) *feedback.Toaster {
			return feedback.NewToaster(cfg.ToastDwell, logger)
		},
		func(
			cfg *config.Config,
			dels *deliveries.Service,
			ib *inbox.Store,
			avail *availability.State,
			toaster *feedback.Toaster,
			decisions *prometheus.CounterVec,
			logger logx.Logger,
		) *session.Session {
			return session.New(cfg.DriverID, dels, ib, avail, toaster, decisions, logger)
		},
	)
}

func registerTransport(container *dig.Container) error {
	return provideAll(container,
		func(
			cfg *config.Config,
			sess *session.Session,
			avail *availability.State,
			logger logx.Logger,
		) (*kafka.Consumer, error) {
			present := func(_ context.Context, o domain.DeliveryOffer) error {
				return sess.Offers.Present(o)
			}
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, avail, present, logger)
		},
	)
}

type httpServersOut struct {
	dig.Out

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server"`
}

func newHTTPServers(cfg *config.Config, mux http.Handler) httpServersOut {
	out := httpServersOut{
		Main: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	if cfg.DebugPort > 0 {
		out.Pprof = &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.DebugPort),
			Handler:           debugserver.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return out
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		handlers.New,
		func(logger logx.Logger, svc *deliveries.Service) *handlers.DeliveryHandler {
			return handlers.NewDeliveryHandler(logger, svc)
		},
		func(logger logx.Logger, sess *session.Session) *handlers.OfferHandler {
			return handlers.NewOfferHandler(logger, sess.Offers)
		},
		func(logger logx.Logger, ib *inbox.Store) *handlers.NotificationsHandler {
			return handlers.NewNotificationsHandler(logger, ib)
		},
		func(logger logx.Logger, avail *availability.State, toaster *feedback.Toaster) *handlers.AvailabilityHandler {
			return handlers.NewAvailabilityHandler(logger, avail, toaster)
		},
		func(
			logger logx.Logger,
			base *handlers.Handlers,
			del *handlers.DeliveryHandler,
			off *handlers.OfferHandler,
			notif *handlers.NotificationsHandler,
			avail *handlers.AvailabilityHandler,
			rl *ratelimit.Middleware,
		) http.Handler {
			return router.New(router.Deps{
				Logger:        logger,
				Base:          base,
				Deliveries:    del,
				Offers:        off,
				Notifications: notif,
				Availability:  avail,
				MarkLimit:     rl.Handler(),
			})
		},
		newHTTPServers,
	)
}
