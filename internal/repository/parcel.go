package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"parcel-service/internal/domain"
	"parcel-service/internal/ports/parceltx"
)

const parcelsTrackingIndex = "parcels_tracking_id_uidx"

const parcelColumns = `
    id::text, sender_name, sender_email, parcel_name, receiver_name, receiver_district,
    cost::text, delivery_status, payment_status,
    COALESCE(tracking_id, ''), COALESCE(rider_id::text, ''), COALESCE(rider_name, ''), COALESCE(rider_email, ''),
    created_at`

// ParcelRepo represents parcel repository.
type ParcelRepo struct{ db querier }

// NewParcelRepo creates a new ParcelRepo.
func NewParcelRepo(db querier) *ParcelRepo { return &ParcelRepo{db: db} }

func scanParcel(row pgx.Row) (*domain.Parcel, error) {
	var (
		p    domain.Parcel
		cost string
	)
	err := row.Scan(&p.ID, &p.SenderName, &p.SenderEmail, &p.ParcelName, &p.ReceiverName, &p.ReceiverDistrict,
		&cost, &p.DeliveryStatus, &p.PaymentStatus,
		&p.TrackingID, &p.RiderID, &p.RiderName, &p.RiderEmail, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if p.Cost, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("parse cost %q: %w", cost, err)
	}
	return &p, nil
}

func (r *ParcelRepo) get(ctx context.Context, id string, forUpdate bool) (*domain.Parcel, error) {
	q := `SELECT` + parcelColumns + ` FROM parcels WHERE id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	p, err := scanParcel(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parcel %s: %w", id, err)
	}
	return p, nil
}

// Get - returns parcel by its ID.
func (r *ParcelRepo) Get(ctx context.Context, id string) (*domain.Parcel, error) {
	return r.get(ctx, id, false)
}

// List returns parcels newest first. Empty filter fields are ignored.
func (r *ParcelRepo) List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error) {
	q := `SELECT` + parcelColumns + ` FROM parcels
        WHERE ($1::text IS NULL OR sender_email = $1)
          AND ($2::text IS NULL OR delivery_status = $2)
        ORDER BY created_at DESC, id`
	args := []any{nonEmpty(f.SenderEmail), nonEmpty(string(f.DeliveryStatus))}
	q, args = appendPage(q, args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Parcel, 0, capacity(f.Limit))
	for rows.Next() {
		p, err := scanParcel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Create inserts p and fills the store-assigned ID and CreatedAt.
func (r *ParcelRepo) Create(ctx context.Context, p *domain.Parcel) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO parcels (sender_name, sender_email, parcel_name, receiver_name, receiver_district,
                             cost, delivery_status, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
        RETURNING id::text, created_at
    `, p.SenderName, p.SenderEmail, p.ParcelName, p.ReceiverName, p.ReceiverDistrict,
		p.Cost.String(), string(p.DeliveryStatus), string(p.PaymentStatus),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create parcel: %w", err)
	}
	return nil
}

// UpdateFields applies a targeted update guarded by pre.
// It returns false when no row matched the id and the precondition.
func (r *ParcelRepo) UpdateFields(ctx context.Context, u domain.ParcelUpdate, pre domain.ParcelPrecondition) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE parcels
        SET
            delivery_status = COALESCE($2, delivery_status),
            payment_status  = COALESCE($3, payment_status),
            tracking_id     = COALESCE($4, tracking_id),
            rider_id        = COALESCE($5::uuid, rider_id),
            rider_name      = COALESCE($6, rider_name),
            rider_email     = COALESCE($7, rider_email),
            updated_at      = now()
        WHERE id = $1
          AND ($8::text IS NULL OR payment_status <> $8)
          AND ($9::text IS NULL OR delivery_status = $9)
    `, u.ID, text(u.DeliveryStatus), text(u.PaymentStatus), u.TrackingID, u.RiderID, u.RiderName, u.RiderEmail,
		text(pre.PaymentStatusNot), text(pre.DeliveryStatus))
	if err != nil {
		if IsDuplicateOn(err, parcelsTrackingIndex) {
			return false, fmt.Errorf("update parcel %s: %w", u.ID, parceltx.ErrTrackingIDTaken)
		}
		return false, fmt.Errorf("update parcel %s: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}
