package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
	"parcel-service/internal/lock"
	"parcel-service/internal/logx"
	"parcel-service/internal/metrics"
	"parcel-service/internal/ports/parceltx"
)

// trackingAttempts bounds how many tracking ids one confirmation tries.
const trackingAttempts = 3

// Confirm applies a paid checkout session to its parcel exactly once.
//
// Unpaid sessions return Success=false with Code=not_paid and write nothing.
// A parcel that is already paid is not touched again: the stored tracking id and
// transaction reference are returned with AlreadyConfirmed set.
func (s *Service) Confirm(ctx context.Context, sessionRef string) (domain.ConfirmationResult, error) {
	ref := strings.TrimSpace(sessionRef)
	if ref == "" {
		return domain.ConfirmationResult{}, fmt.Errorf("%w: session reference is required", apperr.ErrInvalid)
	}

	st, err := s.gateway.RetrieveSession(ctx, ref)
	if err != nil {
		return s.fail(ref, "", apperr.AtStep("retrieve_session", err))
	}

	if !st.Paid {
		s.count(metrics.OutcomeNotPaid)
		s.logger.Info("payment not completed",
			logx.Event("payment_not_paid"),
			logx.String("session_id", ref),
		)
		return domain.ConfirmationResult{Success: false, Code: domain.CodeNotPaid}, nil
	}

	parcelID, ok := domain.ParseID(st.ParcelID)
	if !ok {
		err := fmt.Errorf("%w: session carries malformed parcel id %q", apperr.ErrInvalid, st.ParcelID)
		return s.fail(ref, st.ParcelID, apperr.AtStep("validate_session", err))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	release, err := s.locker.Acquire(ctx, lock.ParcelKey(parcelID))
	if err != nil {
		return s.fail(ref, parcelID, apperr.AtStep("lock_parcel", err))
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("parcel lock release failed", logx.String("parcel_id", parcelID), logx.Err(err))
		}
	}()

	res, err := s.apply(ctx, parcelID, st)
	for attempt := 1; errors.Is(err, parceltx.ErrTrackingIDTaken) && attempt < trackingAttempts; attempt++ {
		s.logger.Warn("tracking id collision, regenerating",
			logx.String("parcel_id", parcelID),
			logx.Int("attempt", attempt),
		)
		res, err = s.apply(ctx, parcelID, st)
	}
	if errors.Is(err, apperr.ErrPrecondition) {
		// another confirmation committed first
		if won, rerr := s.confirmed(ctx, parcelID); rerr == nil && won != nil {
			res, err = *won, nil
		}
	}
	if err != nil {
		return s.fail(ref, parcelID, err)
	}

	if res.AlreadyConfirmed {
		if st.TransactionReference != "" && st.TransactionReference != res.TransactionReference {
			s.logger.Warn("paid session differs from recorded payment",
				logx.String("session_id", ref),
				logx.String("parcel_id", parcelID),
				logx.String("session_transaction_id", st.TransactionReference),
				logx.String("recorded_transaction_id", res.TransactionReference),
			)
		}
		s.count(metrics.OutcomeAlreadyConfirmed)
		s.logger.Info("payment already confirmed",
			logx.Event("payment_already_confirmed"),
			logx.String("session_id", ref),
			logx.String("parcel_id", parcelID),
			logx.String("tracking_id", res.TrackingID),
		)
		return res, nil
	}

	s.count(metrics.OutcomeConfirmed)
	s.logger.Info("payment confirmed",
		logx.Event("payment_confirmed"),
		logx.String("session_id", ref),
		logx.String("parcel_id", parcelID),
		logx.String("tracking_id", res.TrackingID),
		logx.String("transaction_id", res.TransactionReference),
	)
	return res, nil
}

func (s *Service) apply(ctx context.Context, parcelID string, st *domain.SessionStatus) (domain.ConfirmationResult, error) {
	var res domain.ConfirmationResult

	err := s.tx.WithTx(ctx, func(tx parceltx.Repository) error {
		p, err := tx.GetParcelForUpdate(ctx, parcelID)
		if err != nil {
			return apperr.AtStep("load_parcel", err)
		}
		if p == nil {
			return apperr.AtStep("load_parcel", fmt.Errorf("parcel %s: %w", parcelID, apperr.ErrNotFound))
		}
		if p.IsPaid() {
			res, err = alreadyConfirmed(ctx, tx, p)
			return err
		}

		if amount := st.Amount(); !amount.Equal(p.Cost) {
			s.logger.Warn("paid amount differs from parcel cost",
				logx.String("parcel_id", parcelID),
				logx.Decimal("paid", amount),
				logx.Decimal("cost", p.Cost),
			)
		}

		trackingID := s.tracking.Generate()
		paid := domain.PaymentPaid
		pickup := domain.DeliveryPendingPickup
		ok, err := tx.UpdateParcel(ctx, domain.ParcelUpdate{
			ID:             parcelID,
			PaymentStatus:  &paid,
			DeliveryStatus: &pickup,
			TrackingID:     &trackingID,
		}, domain.ParcelPrecondition{PaymentStatusNot: &paid})
		if err != nil {
			return apperr.AtStep("update_parcel", err)
		}
		if !ok {
			return apperr.AtStep("update_parcel", fmt.Errorf("parcel %s: %w", parcelID, apperr.ErrPrecondition))
		}

		rec := &domain.PaymentRecord{
			Amount:               st.Amount(),
			Currency:             st.Currency,
			PayerEmail:           firstNonEmpty(st.PayerEmail, p.SenderEmail),
			ParcelID:             parcelID,
			ParcelName:           firstNonEmpty(st.ParcelName, p.ParcelName),
			TransactionReference: st.TransactionReference,
			PaymentStatus:        domain.PaymentPaid,
			PaidAt:               s.now(),
			TrackingID:           trackingID,
		}
		if err := tx.InsertPayment(ctx, rec); err != nil {
			return apperr.AtStep("insert_payment", err)
		}

		res = domain.ConfirmationResult{
			Success:              true,
			ParcelID:             parcelID,
			TrackingID:           trackingID,
			TransactionReference: rec.TransactionReference,
			ParcelUpdate:         &domain.ParcelUpdateOutcome{Matched: 1, Modified: 1},
			LedgerInsert:         &domain.LedgerInsertOutcome{PaymentID: rec.ID, Inserted: true},
		}
		return nil
	})
	return res, err
}

// confirmed re-reads a parcel after a lost race. It returns nil if the parcel is still unpaid.
func (s *Service) confirmed(ctx context.Context, parcelID string) (*domain.ConfirmationResult, error) {
	var out *domain.ConfirmationResult
	err := s.tx.WithTx(ctx, func(tx parceltx.Repository) error {
		p, err := tx.GetParcelForUpdate(ctx, parcelID)
		if err != nil || !p.IsPaid() {
			return err
		}
		res, err := alreadyConfirmed(ctx, tx, p)
		if err != nil {
			return err
		}
		out = &res
		return nil
	})
	return out, err
}

func alreadyConfirmed(ctx context.Context, tx parceltx.Repository, p *domain.Parcel) (domain.ConfirmationResult, error) {
	res := domain.ConfirmationResult{
		Success:          true,
		Code:             domain.CodeAlreadyConfirmed,
		AlreadyConfirmed: true,
		ParcelID:         p.ID,
		TrackingID:       p.TrackingID,
		ParcelUpdate:     &domain.ParcelUpdateOutcome{Matched: 1, Modified: 0},
	}
	pay, err := tx.GetPaymentByParcelID(ctx, p.ID)
	if err != nil {
		return domain.ConfirmationResult{}, apperr.AtStep("load_payment", err)
	}
	if pay != nil {
		res.TransactionReference = pay.TransactionReference
		res.LedgerInsert = &domain.LedgerInsertOutcome{PaymentID: pay.ID, Inserted: false}
	}
	return res, nil
}

func (s *Service) fail(ref, parcelID string, err error) (domain.ConfirmationResult, error) {
	s.count(metrics.OutcomeFailed)
	s.logger.Error("payment confirmation failed",
		logx.Event("payment_confirmation_failed"),
		logx.String("session_id", ref),
		logx.String("parcel_id", parcelID),
		logx.String("step", apperr.Step(err)),
		logx.String("code", apperr.Code(err)),
		logx.Err(err),
	)
	return domain.ConfirmationResult{}, err
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
