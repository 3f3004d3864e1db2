package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/multierr"

	"parcel-service/internal/domain"
	"parcel-service/internal/ports/parceltx"
)

// TxRunner opens transactions spanning parcels, payments, riders and users.
type TxRunner struct {
	db *pgxpool.Pool
}

// NewTxRunner creates a new TxRunner.
func NewTxRunner(db *pgxpool.Pool) *TxRunner {
	return &TxRunner{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *TxRunner) WithTx(ctx context.Context, fn func(tx parceltx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// rollback on panic
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if err := fn(newTxRepo(tx)); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return multierr.Append(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxRepo implements parceltx.Repository on top of one pgx transaction.
type TxRepo struct {
	parcels  *ParcelRepo
	payments *PaymentRepo
	riders   *RiderRepo
	users    *UserRepo
}

func newTxRepo(tx pgx.Tx) *TxRepo {
	return &TxRepo{
		parcels:  NewParcelRepo(tx),
		payments: NewPaymentRepo(tx),
		riders:   NewRiderRepo(tx),
		users:    NewUserRepo(tx),
	}
}

// GetParcelForUpdate loads a parcel and locks its row until the transaction ends.
func (r *TxRepo) GetParcelForUpdate(ctx context.Context, id string) (*domain.Parcel, error) {
	return r.parcels.get(ctx, id, true)
}

// UpdateParcel applies a guarded targeted update.
func (r *TxRepo) UpdateParcel(ctx context.Context, u domain.ParcelUpdate, pre domain.ParcelPrecondition) (bool, error) {
	return r.parcels.UpdateFields(ctx, u, pre)
}

// InsertPayment appends a ledger row.
func (r *TxRepo) InsertPayment(ctx context.Context, p *domain.PaymentRecord) error {
	return r.payments.Insert(ctx, p)
}

// GetPaymentByParcelID returns the ledger row of a parcel or (nil, nil).
func (r *TxRepo) GetPaymentByParcelID(ctx context.Context, parcelID string) (*domain.PaymentRecord, error) {
	return r.payments.GetByParcelID(ctx, parcelID)
}

// GetRiderForUpdate loads a rider and locks its row until the transaction ends.
func (r *TxRepo) GetRiderForUpdate(ctx context.Context, id string) (*domain.Rider, error) {
	return r.riders.getBy(ctx, "id", id, true)
}

// UpdateRider applies a targeted rider update.
func (r *TxRepo) UpdateRider(ctx context.Context, u domain.RiderUpdate) (bool, error) {
	return r.riders.UpdateFields(ctx, u)
}

// UpdateUserRoleByEmail sets the role of the user with email.
func (r *TxRepo) UpdateUserRoleByEmail(ctx context.Context, email string, role domain.Role) (bool, error) {
	return r.users.UpdateRoleByEmail(ctx, email, role)
}

var _ parceltx.Repository = (*TxRepo)(nil)
