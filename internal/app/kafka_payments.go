package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"parcel-service/internal/apperr"
	"parcel-service/internal/config"
	"parcel-service/internal/logx"
	"parcel-service/internal/service/notifications"
	"parcel-service/internal/service/payment"
	"parcel-service/internal/transport/kafka"
)

type notificationHandler interface {
	Handle(ctx context.Context, e notifications.Event) error
}

// makePaymentsKafka adapts the processor to the consumer. Failures redelivery cannot fix are
// marked permanent; gateway and storage failures stay retryable.
func makePaymentsKafka(p notificationHandler) kafka.HandleFunc {
	return func(ctx context.Context, event notifications.Event) error {
		err := p.Handle(ctx, event)
		if err == nil {
			return nil
		}
		switch {
		case errors.Is(err, apperr.ErrInvalid),
			errors.Is(err, apperr.ErrNotFound),
			errors.Is(err, apperr.ErrPrecondition),
			errors.Is(err, apperr.ErrConflict):
			return kafka.Permanent(err)
		default:
			return err
		}
	}
}

func newPaymentsConsumer(cfg *config.Config, logger logx.Logger, p *notifications.Processor) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, makePaymentsKafka(p))
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(svc *payment.Service, logger logx.Logger) *notifications.Processor {
			return notifications.NewProcessor(svc, logger)
		},
		newPaymentsConsumer,
	)
}
