package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
)

const (
	paymentColumns = `
    id::text, amount::text, currency, payer_email, parcel_id::text, parcel_name,
    transaction_reference, payment_status, paid_at, tracking_id`

	paymentsParcelIndex = "payments_parcel_id_uidx"
)

// PaymentRepo is the append-only payment ledger.
type PaymentRepo struct{ db querier }

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(db querier) *PaymentRepo { return &PaymentRepo{db: db} }

func scanPayment(row pgx.Row) (*domain.PaymentRecord, error) {
	var (
		p      domain.PaymentRecord
		amount string
	)
	err := row.Scan(&p.ID, &amount, &p.Currency, &p.PayerEmail, &p.ParcelID, &p.ParcelName,
		&p.TransactionReference, &p.PaymentStatus, &p.PaidAt, &p.TrackingID)
	if err != nil {
		return nil, err
	}
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return &p, nil
}

// Insert appends p to the ledger and fills its ID.
// A second row for the same parcel fails with apperr.ErrPrecondition.
func (r *PaymentRepo) Insert(ctx context.Context, p *domain.PaymentRecord) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO payments (amount, currency, payer_email, parcel_id, parcel_name,
                              transaction_reference, payment_status, paid_at, tracking_id)
        VALUES ($1::numeric, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id::text
    `, p.Amount.String(), p.Currency, p.PayerEmail, p.ParcelID, p.ParcelName,
		p.TransactionReference, string(p.PaymentStatus), p.PaidAt, p.TrackingID,
	).Scan(&p.ID)
	if err != nil {
		if IsDuplicateOn(err, paymentsParcelIndex) {
			return fmt.Errorf("payment for parcel %s already recorded: %w", p.ParcelID, apperr.ErrPrecondition)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByParcelID returns the ledger row of a parcel or (nil, nil).
func (r *PaymentRepo) GetByParcelID(ctx context.Context, parcelID string) (*domain.PaymentRecord, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT`+paymentColumns+` FROM payments WHERE parcel_id = $1`, parcelID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment by parcel %s: %w", parcelID, err)
	}
	return p, nil
}

// ListByPayer returns ledger rows newest first; empty email lists everything.
func (r *PaymentRepo) ListByPayer(ctx context.Context, email string) ([]domain.PaymentRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT`+paymentColumns+` FROM payments
        WHERE ($1::text IS NULL OR payer_email = $1)
        ORDER BY paid_at DESC, id`, nonEmpty(email))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []domain.PaymentRecord
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
