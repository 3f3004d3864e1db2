package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
	"parcel-service/internal/lock"
	"parcel-service/internal/logx"
	"parcel-service/internal/ports/parceltx"
)

// Deps are the collaborators of Service. Locker, Outcomes and Logger are optional.
type Deps struct {
	Gateway  SessionGateway
	Tracking TrackingGenerator
	Tx       parceltx.Runner
	Parcels  parcelReader
	Payments paymentLister
	Locker   lock.Locker
	Outcomes outcomeCounter
	Timeout  time.Duration
	Logger   logx.Logger
}

// Service opens checkout sessions and confirms payments.
type Service struct {
	gateway          SessionGateway
	tracking         TrackingGenerator
	tx               parceltx.Runner
	parcels          parcelReader
	payments         paymentLister
	locker           lock.Locker
	outcomes         outcomeCounter
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a new payment Service.
func NewService(d Deps) *Service {
	if d.Timeout <= 0 {
		d.Timeout = 3 * time.Second
	}
	if d.Locker == nil {
		d.Locker = lock.Nop{}
	}
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	return &Service{
		gateway:          d.Gateway,
		tracking:         d.Tracking,
		tx:               d.Tx,
		parcels:          d.Parcels,
		payments:         d.Payments,
		locker:           d.Locker,
		outcomes:         d.Outcomes,
		operationTimeout: d.Timeout,
		logger:           d.Logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func (s *Service) count(outcome string) {
	if s.outcomes != nil {
		s.outcomes.WithLabelValues(outcome).Inc()
	}
}

// CreateCheckout opens a checkout session for the stored cost of an unpaid parcel.
func (s *Service) CreateCheckout(ctx context.Context, parcelID string) (*domain.CheckoutSession, error) {
	id, ok := domain.ParseID(parcelID)
	if !ok {
		return nil, fmt.Errorf("%w: malformed parcel id %q", apperr.ErrInvalid, parcelID)
	}

	loadCtx, cancel := s.withTimeout(ctx)
	p, err := s.parcels.Get(loadCtx, id)
	cancel()
	if err != nil {
		return nil, apperr.AtStep("load_parcel", err)
	}
	if p == nil {
		return nil, apperr.AtStep("load_parcel", fmt.Errorf("parcel %s: %w", id, apperr.ErrNotFound))
	}
	if p.IsPaid() {
		return nil, fmt.Errorf("parcel %s is already paid: %w", id, apperr.ErrPrecondition)
	}

	cs, err := s.gateway.CreateCheckoutSession(ctx, domain.CheckoutRequest{
		Cost:       p.Cost,
		ParcelName: p.ParcelName,
		ParcelID:   p.ID,
		PayerEmail: p.SenderEmail,
	})
	if err != nil {
		return nil, apperr.AtStep("create_session", err)
	}

	s.logger.Info("checkout session created",
		logx.Event("checkout_created"),
		logx.String("parcel_id", p.ID),
		logx.String("session_id", cs.SessionID),
	)
	return cs, nil
}

// History lists ledger rows newest first; an empty email lists every payment.
func (s *Service) History(ctx context.Context, payerEmail string) ([]domain.PaymentRecord, error) {
	email := strings.TrimSpace(payerEmail)
	if email != "" && !domain.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: malformed email %q", apperr.ErrInvalid, payerEmail)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.payments.ListByPayer(ctx, email)
}
