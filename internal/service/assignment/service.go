package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
	"parcel-service/internal/lock"
	"parcel-service/internal/logx"
	"parcel-service/internal/metrics"
	"parcel-service/internal/ports/parceltx"
)

type outcomeCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Service assigns riders to paid parcels.
type Service struct {
	tx               parceltx.Runner
	locker           lock.Locker
	outcomes         outcomeCounter
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a new assignment Service. locker and outcomes may be nil.
func NewService(tx parceltx.Runner, locker lock.Locker, outcomes outcomeCounter, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if locker == nil {
		locker = lock.Nop{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		tx:               tx,
		locker:           locker,
		outcomes:         outcomes,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Assign marks the parcel delivery_assigned and the rider in_delivery in one transaction.
// Rider name and email default to the rider record when empty.
func (s *Service) Assign(ctx context.Context, cmd domain.AssignCommand) (domain.AssignmentResult, error) {
	parcelID, ok := domain.ParseID(cmd.ParcelID)
	if !ok {
		return domain.AssignmentResult{}, fmt.Errorf("%w: malformed parcel id %q", apperr.ErrInvalid, cmd.ParcelID)
	}
	riderID, ok := domain.ParseID(cmd.RiderID)
	if !ok {
		return domain.AssignmentResult{}, fmt.Errorf("%w: malformed rider id %q", apperr.ErrInvalid, cmd.RiderID)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	release, err := s.locker.Acquire(ctx, lock.ParcelKey(parcelID))
	if err != nil {
		return s.fail(parcelID, riderID, apperr.AtStep("lock_parcel", err))
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("parcel lock release failed", logx.String("parcel_id", parcelID), logx.Err(err))
		}
	}()

	var result domain.AssignmentResult
	err = s.tx.WithTx(ctx, func(tx parceltx.Repository) error {
		p, err := tx.GetParcelForUpdate(ctx, parcelID)
		if err != nil {
			return apperr.AtStep("load_parcel", err)
		}
		if p == nil {
			return apperr.AtStep("load_parcel", fmt.Errorf("parcel %s: %w", parcelID, apperr.ErrNotFound))
		}
		r, err := tx.GetRiderForUpdate(ctx, riderID)
		if err != nil {
			return apperr.AtStep("load_rider", err)
		}
		if r == nil {
			return apperr.AtStep("load_rider", fmt.Errorf("rider %s: %w", riderID, apperr.ErrNotFound))
		}

		if !p.IsPaid() || p.DeliveryStatus != domain.DeliveryPendingPickup {
			return apperr.AtStep("check_parcel", fmt.Errorf("parcel %s is %s/%s: %w",
				parcelID, p.PaymentStatus, p.DeliveryStatus, apperr.ErrPrecondition))
		}
		if r.Status != domain.RiderApproved || r.WorkStatus != domain.WorkAvailable {
			return apperr.AtStep("check_rider", fmt.Errorf("rider %s is %s/%s: %w",
				riderID, r.Status, r.WorkStatus, apperr.ErrPrecondition))
		}

		name := firstNonEmpty(cmd.RiderName, r.Name)
		email := firstNonEmpty(cmd.RiderEmail, r.Email)
		assigned := domain.DeliveryAssigned
		pickup := domain.DeliveryPendingPickup
		ok, err := tx.UpdateParcel(ctx, domain.ParcelUpdate{
			ID:             parcelID,
			DeliveryStatus: &assigned,
			RiderID:        &riderID,
			RiderName:      &name,
			RiderEmail:     &email,
		}, domain.ParcelPrecondition{DeliveryStatus: &pickup})
		if err != nil {
			return apperr.AtStep("update_parcel", err)
		}
		if !ok {
			return apperr.AtStep("update_parcel", fmt.Errorf("parcel %s: %w", parcelID, apperr.ErrPrecondition))
		}

		busy := domain.WorkInDelivery
		ok, err = tx.UpdateRider(ctx, domain.RiderUpdate{ID: riderID, WorkStatus: &busy})
		if err != nil {
			return apperr.AtStep("update_rider", err)
		}
		if !ok {
			return apperr.AtStep("update_rider", fmt.Errorf("rider %s: %w", riderID, apperr.ErrNotFound))
		}

		result = domain.AssignmentResult{
			ParcelID:       parcelID,
			RiderID:        riderID,
			RiderName:      name,
			RiderEmail:     email,
			DeliveryStatus: assigned,
			WorkStatus:     busy,
			AssignedAt:     s.now(),
		}
		return nil
	})
	if err != nil {
		return s.fail(parcelID, riderID, err)
	}

	if s.outcomes != nil {
		s.outcomes.WithLabelValues(metrics.OutcomeAssigned).Inc()
	}
	s.logger.Info("rider assigned",
		logx.Event("rider_assigned"),
		logx.String("parcel_id", parcelID),
		logx.String("rider_id", riderID),
		logx.Time("assigned_at", result.AssignedAt),
	)
	return result, nil
}

func (s *Service) fail(parcelID, riderID string, err error) (domain.AssignmentResult, error) {
	if s.outcomes != nil {
		s.outcomes.WithLabelValues(metrics.OutcomeFailed).Inc()
	}
	s.logger.Error("rider assignment failed",
		logx.Event("rider_assignment_failed"),
		logx.String("parcel_id", parcelID),
		logx.String("rider_id", riderID),
		logx.String("step", apperr.Step(err)),
		logx.Err(err),
	)
	return domain.AssignmentResult{}, err
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
