package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
	"parcel-service/internal/ports/parceltx"
)

func TestWithTx_ErrorDiscardsWrites(t *testing.T) {
	s := New()
	p := s.PutParcel(domain.Parcel{DeliveryStatus: domain.DeliveryPendingPayment, PaymentStatus: domain.PaymentUnpaid})

	boom := errors.New("boom")
	err := s.WithTx(context.Background(), func(tx parceltx.Repository) error {
		st := domain.DeliveryAssigned
		ok, err := tx.UpdateParcel(context.Background(), domain.ParcelUpdate{ID: p.ID, DeliveryStatus: &st}, domain.ParcelPrecondition{})
		require.NoError(t, err)
		require.True(t, ok)

		got, err := tx.GetParcelForUpdate(context.Background(), p.ID)
		require.NoError(t, err)
		require.Equal(t, domain.DeliveryAssigned, got.DeliveryStatus, "tx sees its own writes")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _ := s.Parcel(p.ID)
	require.Equal(t, domain.DeliveryPendingPayment, got.DeliveryStatus)
	require.Zero(t, s.Commits())
}

func TestWithTx_CommitRechecksPreconditions(t *testing.T) {
	s := New()
	p := s.PutParcel(domain.Parcel{PaymentStatus: domain.PaymentUnpaid})
	paid := domain.PaymentPaid
	pre := domain.ParcelPrecondition{PaymentStatusNot: &paid}
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.WithTx(ctx, func(tx parceltx.Repository) error {
			ok, err := tx.UpdateParcel(ctx, domain.ParcelUpdate{ID: p.ID, PaymentStatus: &paid}, pre)
			if err == nil && !ok {
				err = errors.New("snapshot already paid")
			}
			close(started)
			<-release
			return err
		})
	}()
	<-started

	require.NoError(t, s.WithTx(ctx, func(tx parceltx.Repository) error {
		_, err := tx.UpdateParcel(ctx, domain.ParcelUpdate{ID: p.ID, PaymentStatus: &paid}, pre)
		return err
	}))
	close(release)

	require.ErrorIs(t, <-done, apperr.ErrPrecondition)
	require.Equal(t, 1, s.Commits())
}

func TestInsertPayment_OnePerParcel(t *testing.T) {
	s := New()
	ctx := context.Background()
	rec := &domain.PaymentRecord{ParcelID: "p-1"}

	require.NoError(t, s.WithTx(ctx, func(tx parceltx.Repository) error {
		return tx.InsertPayment(ctx, rec)
	}))
	require.NotEmpty(t, rec.ID)

	err := s.WithTx(ctx, func(tx parceltx.Repository) error {
		return tx.InsertPayment(ctx, &domain.PaymentRecord{ParcelID: "p-1"})
	})
	require.ErrorIs(t, err, apperr.ErrPrecondition)
	require.Len(t, s.Payments(), 1)
}

func TestFaults_UpdateRider(t *testing.T) {
	s := New()
	r := s.PutRider(domain.Rider{WorkStatus: domain.WorkAvailable})
	boom := errors.New("rider store down")
	s.SetFaults(Faults{UpdateRider: func(domain.RiderUpdate) error { return boom }})

	err := s.WithTx(context.Background(), func(tx parceltx.Repository) error {
		busy := domain.WorkInDelivery
		_, err := tx.UpdateRider(context.Background(), domain.RiderUpdate{ID: r.ID, WorkStatus: &busy})
		return err
	})
	require.ErrorIs(t, err, boom)
}

func TestUpdateParcel_TrackingIDUnique(t *testing.T) {
	s := New()
	s.PutParcel(domain.Parcel{PaymentStatus: domain.PaymentPaid, TrackingID: "PS-20250101-AAAAAA"})
	p := s.PutParcel(domain.Parcel{PaymentStatus: domain.PaymentUnpaid})
	ctx := context.Background()

	taken := "PS-20250101-AAAAAA"
	err := s.WithTx(ctx, func(tx parceltx.Repository) error {
		_, err := tx.UpdateParcel(ctx, domain.ParcelUpdate{ID: p.ID, TrackingID: &taken}, domain.ParcelPrecondition{})
		return err
	})
	require.ErrorIs(t, err, parceltx.ErrTrackingIDTaken)
	require.ErrorIs(t, err, apperr.ErrConflict)

	got, _ := s.Parcel(p.ID)
	require.Empty(t, got.TrackingID)
	require.Zero(t, s.Commits())
}
