package notifications

import (
	"context"

	"parcel-service/internal/logx"
)

// Processor routes gateway notifications to the confirmation workflow.
type Processor struct {
	confirmer Confirmer
	factory   *actionFactory
	logger    logx.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(c Confirmer, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{confirmer: c, logger: logger}
	p.factory = newActionFactory(p.onPaid)
	return p
}

// Handle processes a single Event. Unknown types are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Type)
	if !ok {
		p.logger.Debug("notification ignored",
			logx.String("session_id", e.SessionID),
			logx.String("type", e.Type),
		)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onPaid(ctx context.Context, e Event) error {
	res, err := p.confirmer.Confirm(ctx, e.SessionID)
	if err != nil {
		return err
	}
	if !res.Success {
		// completed sessions can still await an asynchronous payment
		p.logger.Info("notification session not paid yet",
			logx.String("session_id", e.SessionID),
			logx.String("code", res.Code),
		)
	}
	return nil
}
