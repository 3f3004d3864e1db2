package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"parcel-service/internal/config"
	"parcel-service/internal/http/handlers"
	"parcel-service/internal/lock"
	"parcel-service/internal/logx"
	"parcel-service/internal/ports/parceltx"
	"parcel-service/internal/service/payment"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             8080,
		OperationTimeout: time.Second,
		CORSOrigins:      []string{"*"},
		DB:               config.DefaultDB(),
		Redis:            config.DefaultRedis(),
		Kafka:            config.DefaultKafka(),
		Payments: config.Payments{
			StripeSecret: "sk_test_123",
			SiteDomain:   "http://localhost:5173",
			Currency:     "usd",
			Timeout:      time.Second,
		},
		RateLimit: config.DefaultRateLimit(),
		Log:       config.DefaultLog(),
	}
}

func stubConnect(pool *pgxpool.Pool, err error) dbConnectFunc {
	return func(context.Context, logx.Logger, config.DB, int, time.Duration) (*pgxpool.Pool, error) {
		return pool, err
	}
}

func setupTestContainer(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c := dig.New()

	providers := []struct {
		name     string
		provider any
	}{
		{"context", func() context.Context { return context.Background() }},
		{"logger", logx.Nop},
		{"config", func() *config.Config { return cfg }},
		{"metrics", provideMetrics},
	}
	for _, p := range providers {
		err := c.Provide(p.provider)
		require.NoErrorf(t, err, "provide %s", p.name)
	}

	require.NoError(t, registerDb(c, stubConnect(&pgxpool.Pool{}, nil)))
	require.NoError(t, registerService(c))
	require.NoError(t, registerHTTP(c))
	return c
}

func TestRegisterHTTP_ProvidesServerAndHandlers(t *testing.T) {
	c := setupTestContainer(t, testConfig())

	err := c.Invoke(func(
		srv *http.Server,
		base *handlers.Handlers,
		parcels *handlers.ParcelHandler,
		payments *handlers.PaymentHandler,
		riders *handlers.RiderHandler,
		users *handlers.UserHandler,
	) {
		require.Equal(t, ":8080", srv.Addr)
		require.Greater(t, srv.ReadHeaderTimeout, time.Duration(0))
		require.Greater(t, srv.ReadTimeout, time.Duration(0))
		require.Greater(t, srv.WriteTimeout, time.Duration(0))
		require.Greater(t, srv.IdleTimeout, time.Duration(0))

		require.NotNil(t, base)
		require.NotNil(t, parcels)
		require.NotNil(t, payments)
		require.NotNil(t, riders)
		require.NotNil(t, users)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_ServesPingAndMetrics(t *testing.T) {
	c := setupTestContainer(t, testConfig())

	err := c.Invoke(func(srv *http.Server) {
		for _, path := range []string{"/ping", "/metrics"} {
			rr := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusOK, rr.Code, path)
		}
	})
	require.NoError(t, err)
}

func TestRegisterService_LocalLockerWithoutRedis(t *testing.T) {
	c := setupTestContainer(t, testConfig())

	err := c.Invoke(func(l lock.Locker, tx parceltx.Runner, closeLocker lockBackendCloser) {
		require.IsType(t, &lock.Local{}, l)
		require.NotNil(t, tx)
		require.NoError(t, closeLocker())
	})
	require.NoError(t, err)
}

func TestRegisterService_PaymentRequiresStripeSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Payments.StripeSecret = ""
	c := setupTestContainer(t, cfg)

	err := c.Invoke(func(*payment.Service) {})
	require.Error(t, err)
	require.Contains(t, err.Error(), "stripe secret is required")
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
}

func TestRegisterCore_ProvidesContext(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.WithValue(context.Background(), struct{}{}, "v")

	require.NoError(t, registerCore(c, ctx))
	err := c.Invoke(func(got context.Context) {
		require.Equal(t, ctx, got)
	})
	require.NoError(t, err)
}

func TestRegisterDb_UsesDbConnectAndProvidesPool(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.Background()
	cfg := testConfig()

	require.NoError(t, c.Provide(func() context.Context { return ctx }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(logx.Nop))

	stubPool := &pgxpool.Pool{}
	connect := func(
		gotCtx context.Context,
		_ logx.Logger,
		db config.DB,
		retries int,
		delay time.Duration,
	) (*pgxpool.Pool, error) {
		require.Equal(t, ctx, gotCtx)
		require.Equal(t, cfg.DB, db)
		require.Equal(t, 10, retries)
		require.Equal(t, time.Second, delay)
		return stubPool, nil
	}

	require.NoError(t, registerDb(c, connect))
	err := c.Invoke(func(pool *pgxpool.Pool) {
		require.Same(t, stubPool, pool)
	})
	require.NoError(t, err)
}

func TestRegisterDb_PropagatesConnectError(t *testing.T) {
	t.Parallel()

	c := dig.New()
	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(testConfig))
	require.NoError(t, c.Provide(logx.Nop))

	require.NoError(t, registerDb(c, stubConnect(nil, errors.New("db failed"))))
	err := c.Invoke(func(*pgxpool.Pool) {})
	require.Error(t, err)
	require.Contains(t, err.Error(), "db failed")
}

func TestContainerBuilder_BuildRegistersProviders(t *testing.T) {
	t.Parallel()

	b := NewContainerBuilder().WithDBConnect(stubConnect(&pgxpool.Pool{}, nil))

	c, err := b.build(context.Background())
	require.NoError(t, err)
	require.NotNil(t, c)

	w, err := b.buildWorker(context.Background())
	require.NoError(t, err)
	require.NotNil(t, w)
}

func TestContainerBuilder_MustBuild_DoesNotCallFatalOnSuccess(t *testing.T) {
	t.Parallel()

	builder := NewContainerBuilder().
		WithDBConnect(stubConnect(&pgxpool.Pool{}, nil)).
		WithLogFatalf(func(format string, args ...interface{}) {
			require.FailNowf(t, "logFatalf must not be called", format, args...)
		})

	require.NotNil(t, builder.MustBuild(context.Background()))
	require.NotNil(t, builder.MustBuildWorker(context.Background()))
}

func TestRegisterHTTP_PprofDisabled_ReturnsNilPprofServer(t *testing.T) {
	c := setupTestContainer(t, testConfig())

	err := c.Invoke(func(in runIn) {
		require.NotNil(t, in.Server)
		require.Nil(t, in.Pprof)
	})
	require.NoError(t, err)
}

func TestRegisterHTTP_PprofEnabled_ProvidesPprofServer(t *testing.T) {
	cfg := testConfig()
	cfg.Pprof = config.Pprof{Addr: "127.0.0.1:6060", User: "u", Pass: "p"}
	c := setupTestContainer(t, cfg)

	err := c.Invoke(func(in runIn) {
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
		require.NotNil(t, in.Pprof.Handler)
	})
	require.NoError(t, err)
}
