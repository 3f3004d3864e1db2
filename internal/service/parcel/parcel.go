package parcel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
)

// Service coordinates parcel business logic and orchestrates repository calls.
type Service struct {
	repo             parcelRepository
	operationTimeout time.Duration
}

// NewService creates and configures a parcel Service.
func NewService(r parcelRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateCreate(p *domain.Parcel) error {
	if p == nil {
		return apperr.ErrInvalid
	}
	p.SenderEmail = strings.TrimSpace(p.SenderEmail)
	if !domain.ValidateEmail(p.SenderEmail) {
		return fmt.Errorf("%w: malformed sender email", apperr.ErrInvalid)
	}
	if strings.TrimSpace(p.ParcelName) == "" {
		return fmt.Errorf("%w: parcel name is required", apperr.ErrInvalid)
	}
	if !p.Cost.IsPositive() {
		return fmt.Errorf("%w: cost must be positive", apperr.ErrInvalid)
	}
	if !p.Cost.Round(2).Equal(p.Cost) {
		return fmt.Errorf("%w: cost has sub-cent precision", apperr.ErrInvalid)
	}
	return nil
}

// Create stores a new parcel awaiting payment.
func (s *Service) Create(ctx context.Context, p *domain.Parcel) error {
	if err := validateCreate(p); err != nil {
		return err
	}
	p.DeliveryStatus = domain.DeliveryPendingPayment
	p.PaymentStatus = domain.PaymentUnpaid
	p.TrackingID = ""
	p.RiderID, p.RiderName, p.RiderEmail = "", "", ""

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, p)
}

// Get retrieves a parcel by its ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Parcel, error) {
	id, ok := domain.ParseID(id)
	if !ok {
		return nil, fmt.Errorf("%w: malformed parcel id", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

// List returns parcels newest first.
func (s *Service) List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error) {
	f.SenderEmail = strings.TrimSpace(f.SenderEmail)
	if f.SenderEmail != "" && !domain.ValidateEmail(f.SenderEmail) {
		return nil, fmt.Errorf("%w: malformed sender email", apperr.ErrInvalid)
	}
	if f.DeliveryStatus != "" && !f.DeliveryStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown delivery status %q", apperr.ErrInvalid, f.DeliveryStatus)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f)
}
