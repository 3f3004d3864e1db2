package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"
	"go.uber.org/multierr"

	"parcel-service/internal/logx"
)

// Runner runs the HTTP API.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container and blocks until shutdown.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := loggerFrom(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		log.Fatalf("run error: %v", err)
	}
}

func loggerFrom(container *dig.Container) logx.Logger {
	var logger logx.Logger = logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

type runIn struct {
	dig.In

	Ctx         context.Context
	Logger      logx.Logger
	Pool        *pgxpool.Pool
	Server      *http.Server
	Pprof       *http.Server `name:"pprof_server" optional:"true"`
	CloseLocker lockBackendCloser
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		errCh := make(chan error, 2)
		startServer(in.Server, in.Logger, "api", errCh)
		if in.Pprof != nil {
			startServer(in.Pprof, in.Logger, "pprof", errCh)
		}

		var runErr error
		select {
		case <-in.Ctx.Done():
			in.Logger.Info("shutting down service-parcel")
			runErr = in.Ctx.Err()
		case runErr = <-errCh:
			in.Logger.Error("server failed", logx.Err(runErr))
		}

		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		if in.Pprof != nil {
			gracefulShutdown(in.Pprof, in.Logger, time.Second)
		}
		if err := closeResources(in.Pool, in.CloseLocker); err != nil {
			in.Logger.Error("close resources", logx.Err(err))
		}
		return runErr
	})
}

func startServer(server *http.Server, logger logx.Logger, name string, errCh chan<- error) {
	go func() {
		logger.Info("server listening", logx.String("server", name), logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, closeLocker lockBackendCloser) error {
	var err error
	if closeLocker != nil {
		err = multierr.Append(err, closeLocker())
	}
	if pool != nil {
		pool.Close()
	}
	return err
}
