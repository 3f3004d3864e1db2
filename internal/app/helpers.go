package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"parcel-service/internal/config"
	"parcel-service/internal/lock"
	"parcel-service/internal/logx"
	"parcel-service/internal/repository"
)

var newPool = repository.NewPool

func connectDbWithRetry(
	ctx context.Context,
	logger logx.Logger,
	db config.DB,
	retries int,
	delay time.Duration,
) (*pgxpool.Pool, error) {
	var lastErr error
	const attemptTimeout = 3 * time.Second
	for i := 1; i <= retries; i++ {
		retriesCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		pool, err := newPool(retriesCtx, db.DSN(), db.MaxConns)
		cancel()
		if err == nil {
			logger.Info("db connected", logx.Int("attempt", i))
			return pool, nil
		}
		lastErr = err
		logger.Warn("db connect failed",
			logx.Int("attempt", i),
			logx.Int("retries", retries),
			logx.Err(err),
		)
		if i < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}

// lockBackendCloser releases the connection behind the parcel locker.
type lockBackendCloser func() error

type lockerOut struct {
	dig.Out

	Locker lock.Locker
	Closer lockBackendCloser
}

var newRedisClient = func(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func newLocker(ctx context.Context, cfg *config.Config, logger logx.Logger) (lockerOut, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("parcel lock backend selected", logx.String("backend", "local"))
		return lockerOut{Locker: lock.NewLocal(), Closer: func() error { return nil }}, nil
	}

	client := newRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return lockerOut{}, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
	}

	l, err := lock.NewRedis(client, cfg.Redis.LockTTL)
	if err != nil {
		_ = client.Close()
		return lockerOut{}, err
	}
	logger.Info("parcel lock backend selected",
		logx.String("backend", "redis"),
		logx.String("addr", cfg.Redis.Addr),
	)
	return lockerOut{Locker: l, Closer: client.Close}, nil
}
