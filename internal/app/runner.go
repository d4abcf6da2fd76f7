package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"driverhub/internal/logx"
	"driverhub/internal/session"
	"driverhub/internal/transport/kafka"
)

// MustRun starts the driver session, the HTTP servers and the offer
// consumer using the provided DI container.
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In

	Ctx      context.Context
	Logger   logx.Logger
	Pool     *pgxpool.Pool
	Session  *session.Session
	Consumer *kafka.Consumer `optional:"true"`
	Main     *http.Server
	Pprof    *http.Server `name:"pprof_server" optional:"true"`
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startCtx, cancel := context.WithTimeout(in.Ctx, 30*time.Second)
		err := in.Session.Start(startCtx)
		cancel()
		if err != nil {
			return err
		}

		startServer(in.Main, "driverhub", in.Logger)
		if in.Pprof != nil {
			startServer(in.Pprof, "pprof", in.Logger)
		}
		if in.Consumer != nil {
			go func() {
				if err := in.Consumer.Run(in.Ctx); err != nil && !errors.Is(err, context.Canceled) {
					in.Logger.Error("offer consumer stopped", logx.Err(err))
				}
			}()
		}

		<-in.Ctx.Done()
		in.Logger.Info("shutting down driverhub")

		gracefulShutdown(in.Main, in.Logger, 15*time.Second)
		if in.Pprof != nil {
			gracefulShutdown(in.Pprof, in.Logger, 5*time.Second)
		}
		closeResources(in, in.Logger)
		return nil
	})
}

func startServer(server *http.Server, name string, logger logx.Logger) {
	go func() {
		logger.Info("listening",
			logx.String("server", name),
			logx.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("%s listen error: %v", name, err)
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(in runIn, logger logx.Logger) {
	if in.Consumer != nil {
		if err := in.Consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	in.Session.Close()
	if in.Pool != nil {
		in.Pool.Close()
	}
}
