package rider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
	"parcel-service/internal/logx"
	"parcel-service/internal/ports/parceltx"
)

// Service handles rider applications and their review.
type Service struct {
	repo             riderRepository
	tx               parceltx.Runner
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates a rider Service.
func NewService(r riderRepository, tx parceltx.Runner, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{repo: r, tx: tx, operationTimeout: timeout, logger: logger}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateRegister(r *domain.Rider) error {
	if r == nil {
		return apperr.ErrInvalid
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrInvalid)
	}
	if !domain.ValidateEmail(r.Email) {
		return fmt.Errorf("%w: malformed email", apperr.ErrInvalid)
	}
	return nil
}

// Register stores a new rider application in pending state.
func (s *Service) Register(ctx context.Context, r *domain.Rider) error {
	if err := validateRegister(r); err != nil {
		return err
	}
	r.Status = domain.RiderPending
	r.WorkStatus = ""

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, r)
}

// List returns riders newest first.
func (s *Service) List(ctx context.Context, f domain.RiderFilter) ([]domain.Rider, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown rider status %q", apperr.ErrInvalid, f.Status)
	}
	if f.WorkStatus != "" && !f.WorkStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown work status %q", apperr.ErrInvalid, f.WorkStatus)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f)
}

// UpdateStatus records the review decision and marks the rider available unless a delivery is in progress.
// Approval promotes the user account with the given email (or the rider's own) to role rider.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.RiderStatus, email string) (*domain.Rider, error) {
	id, ok := domain.ParseID(id)
	if !ok {
		return nil, fmt.Errorf("%w: malformed rider id", apperr.ErrInvalid)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown rider status %q", apperr.ErrInvalid, status)
	}
	email = strings.TrimSpace(email)
	if email != "" && !domain.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: malformed email", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out *domain.Rider
	promoted := false
	err := s.tx.WithTx(ctx, func(tx parceltx.Repository) error {
		r, err := tx.GetRiderForUpdate(ctx, id)
		if err != nil {
			return apperr.AtStep("load_rider", err)
		}
		if r == nil {
			return apperr.AtStep("load_rider", fmt.Errorf("%w: rider %s", apperr.ErrNotFound, id))
		}

		upd := domain.RiderUpdate{ID: id, Status: &status}
		// a busy rider stays in_delivery until the parcel is released
		if r.WorkStatus != domain.WorkInDelivery {
			work := domain.WorkAvailable
			upd.WorkStatus = &work
			r.WorkStatus = work
		}
		if _, err := tx.UpdateRider(ctx, upd); err != nil {
			return apperr.AtStep("update_rider", err)
		}
		r.Status = status

		if status == domain.RiderApproved {
			target := email
			if target == "" {
				target = r.Email
			}
			promoted, err = tx.UpdateUserRoleByEmail(ctx, target, domain.RoleRider)
			if err != nil {
				return apperr.AtStep("update_user_role", err)
			}
		}
		out = r
		return nil
	})
	if err != nil {
		s.logger.Error("rider status update failed",
			logx.Event("rider_status_update_failed"),
			logx.String("rider_id", id),
			logx.String("step", apperr.Step(err)),
			logx.Err(err),
		)
		return nil, err
	}

	s.logger.Info("rider status updated",
		logx.Event("rider_status_updated"),
		logx.String("rider_id", id),
		logx.String("status", string(status)),
		logx.Bool("role_promoted", promoted),
	)
	return out, nil
}
