package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"
	"go.uber.org/multierr"

	"parcel-service/internal/logx"
	"parcel-service/internal/transport/kafka"
)

// WorkerRunner runs the payment notifications consumer.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes notifications until the container context is canceled.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	consumer *kafka.Consumer,
	closeLocker lockBackendCloser,
) error {
	if consumer == nil {
		closeWorker(pool, logger, nil, closeLocker)
		return fmt.Errorf("kafka consumer is nil: set KAFKA_BROKERS and KAFKA_PAYMENTS_TOPIC")
	}
	defer closeWorker(pool, logger, consumer, closeLocker)

	logger.Info("parcel-worker started")
	return consumer.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, consumer *kafka.Consumer, closeLocker lockBackendCloser) {
	var err error
	if consumer != nil {
		err = multierr.Append(err, consumer.Close())
	}
	err = multierr.Append(err, closeResources(pool, closeLocker))
	for _, e := range multierr.Errors(err) {
		logger.Error("worker close error", logx.Err(e))
	}
}
