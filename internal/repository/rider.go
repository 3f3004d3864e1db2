package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
)

const riderColumns = `id::text, name, email, phone, district, status, work_status, created_at`

// RiderRepo represents rider repository.
type RiderRepo struct{ db querier }

// NewRiderRepo creates a new RiderRepo.
func NewRiderRepo(db querier) *RiderRepo { return &RiderRepo{db: db} }

func scanRider(row pgx.Row) (*domain.Rider, error) {
	var rd domain.Rider
	if err := row.Scan(&rd.ID, &rd.Name, &rd.Email, &rd.Phone, &rd.District, &rd.Status, &rd.WorkStatus, &rd.CreatedAt); err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *RiderRepo) getBy(ctx context.Context, column, value string, forUpdate bool) (*domain.Rider, error) {
	q := `SELECT ` + riderColumns + ` FROM riders WHERE ` + column + ` = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	rd, err := scanRider(r.db.QueryRow(ctx, q, value))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rider by %s %q: %w", column, value, err)
	}
	return rd, nil
}

// Get - returns rider by its ID.
func (r *RiderRepo) Get(ctx context.Context, id string) (*domain.Rider, error) {
	return r.getBy(ctx, "id", id, false)
}

// GetByEmail - returns rider by email.
func (r *RiderRepo) GetByEmail(ctx context.Context, email string) (*domain.Rider, error) {
	return r.getBy(ctx, "email", email, false)
}

// List returns riders newest first. Empty filter fields are ignored.
func (r *RiderRepo) List(ctx context.Context, f domain.RiderFilter) ([]domain.Rider, error) {
	q := `SELECT ` + riderColumns + ` FROM riders
        WHERE ($1::text IS NULL OR status = $1)
          AND ($2::text IS NULL OR district = $2)
          AND ($3::text IS NULL OR work_status = $3)
        ORDER BY created_at DESC, id`
	args := []any{nonEmpty(string(f.Status)), nonEmpty(f.District), nonEmpty(string(f.WorkStatus))}
	q, args = appendPage(q, args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Rider, 0, capacity(f.Limit))
	for rows.Next() {
		rd, err := scanRider(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rd)
	}
	return out, rows.Err()
}

// Create - creates a new rider and fills ID and CreatedAt.
func (r *RiderRepo) Create(ctx context.Context, rd *domain.Rider) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO riders (name, email, phone, district, status, work_status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id::text, created_at
    `, rd.Name, rd.Email, rd.Phone, rd.District, string(rd.Status), string(rd.WorkStatus),
	).Scan(&rd.ID, &rd.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create rider: %w", err)
	}
	return nil
}

// UpdateFields applies a targeted update and returns true if a row was affected.
func (r *RiderRepo) UpdateFields(ctx context.Context, u domain.RiderUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE riders
        SET
            status      = COALESCE($2, status),
            work_status = COALESCE($3, work_status),
            updated_at  = now()
        WHERE id = $1
    `, u.ID, text(u.Status), text(u.WorkStatus))
	if err != nil {
		return false, fmt.Errorf("update rider %s: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}
