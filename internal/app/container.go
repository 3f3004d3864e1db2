package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"parcel-service/internal/config"
	paymentgw "parcel-service/internal/gateway/payment"
	"parcel-service/internal/http/handlers"
	"parcel-service/internal/http/middleware/ratelimit"
	"parcel-service/internal/http/pprofserver"
	"parcel-service/internal/http/router"
	"parcel-service/internal/lock"
	"parcel-service/internal/logx"
	"parcel-service/internal/ports/parceltx"
	"parcel-service/internal/repository"
	"parcel-service/internal/service/assignment"
	"parcel-service/internal/service/parcel"
	"parcel-service/internal/service/payment"
	"parcel-service/internal/service/rider"
	"parcel-service/internal/service/user"
	"parcel-service/internal/tracking"
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, db config.DB, retries int, delay time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP API container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the notifications worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildBase(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the HTTP API container with default settings.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with default settings.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
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
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, logger logx.Logger, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB, 10, time.Second)
	}
	return provideAll(container,
		providerDB,
		func(pool *pgxpool.Pool) *repository.ParcelRepo { return repository.NewParcelRepo(pool) },
		func(pool *pgxpool.Pool) *repository.PaymentRepo { return repository.NewPaymentRepo(pool) },
		func(pool *pgxpool.Pool) *repository.RiderRepo { return repository.NewRiderRepo(pool) },
		func(pool *pgxpool.Pool) *repository.UserRepo { return repository.NewUserRepo(pool) },
		func(pool *pgxpool.Pool) parceltx.Runner { return repository.NewTxRunner(pool) },
		newLocker,
	)
}

type operationTimeout time.Duration

type paymentIn struct {
	dig.In

	Cfg      *config.Config
	Logger   logx.Logger
	Metrics  workflowMetrics
	Tx       parceltx.Runner
	Parcels  *repository.ParcelRepo
	Payments *repository.PaymentRepo
	Locker   lock.Locker
}

func newPaymentService(in paymentIn) (*payment.Service, error) {
	gw, err := paymentgw.NewStripeGateway(in.Cfg.Payments.StripeSecret, paymentgw.Config{
		SiteDomain: in.Cfg.Payments.SiteDomain,
		Currency:   in.Cfg.Payments.Currency,
		Timeout:    in.Cfg.Payments.Timeout,
	}, in.Logger, in.Metrics.GatewayDuration)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	return payment.NewService(payment.Deps{
		Gateway:  gw,
		Tracking: tracking.NewGenerator(),
		Tx:       in.Tx,
		Parcels:  in.Parcels,
		Payments: in.Payments,
		Locker:   in.Locker,
		Outcomes: in.Metrics.Confirmations,
		Timeout:  in.Cfg.OperationTimeout,
		Logger:   in.Logger,
	}), nil
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) operationTimeout { return operationTimeout(cfg.OperationTimeout) },
		func(repo *repository.ParcelRepo, timeout operationTimeout) *parcel.Service {
			return parcel.NewService(repo, time.Duration(timeout))
		},
		func(repo *repository.UserRepo, timeout operationTimeout) *user.Service {
			return user.NewService(repo, time.Duration(timeout))
		},
		func(repo *repository.RiderRepo, tx parceltx.Runner, timeout operationTimeout, logger logx.Logger) *rider.Service {
			return rider.NewService(repo, tx, time.Duration(timeout), logger)
		},
		func(
			tx parceltx.Runner,
			locker lock.Locker,
			m workflowMetrics,
			timeout operationTimeout,
			logger logx.Logger,
		) *assignment.Service {
			return assignment.NewService(tx, locker, m.Assignments, time.Duration(timeout), logger)
		},
		newPaymentService,
	)
}

type routerIn struct {
	dig.In

	Cfg       *config.Config
	Logger    logx.Logger
	Metrics   workflowMetrics
	RateLimit *ratelimit.Middleware
	Base      *handlers.Handlers
	Parcels   *handlers.ParcelHandler
	Payments  *handlers.PaymentHandler
	Riders    *handlers.RiderHandler
	Users     *handlers.UserHandler
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:         in.Logger,
		Base:           in.Base,
		Parcels:        in.Parcels,
		Payments:       in.Payments,
		Riders:         in.Riders,
		Users:          in.Users,
		HTTPMetrics:    in.Metrics.HTTP,
		RateLimit:      in.RateLimit,
		Metrics:        promhttp.Handler(),
		AllowedOrigins: in.Cfg.CORSOrigins,
	})
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func newPprofServer(cfg *config.Config) pprofOut {
	if cfg.Pprof.Addr == "" {
		return pprofOut{}
	}
	return pprofOut{Server: pprofserver.New(cfg.Pprof.Addr, pprofserver.Config{
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	})}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewParcelUsecase,
		handlers.NewAssignmentUsecase,
		handlers.NewParcelHandler,
		handlers.NewPaymentUsecase,
		handlers.NewPaymentHandler,
		handlers.NewRiderUsecase,
		handlers.NewRiderHandler,
		handlers.NewUserUsecase,
		handlers.NewUserHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
		newPprofServer,
	)
}
