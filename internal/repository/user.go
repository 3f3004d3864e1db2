package repository

import (
	"context"
	"fmt"
	"strings"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
)

const userColumns = `id::text, display_name, email, photo_url, role, created_at`

// UserRepo represents user repository.
type UserRepo struct{ db querier }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db querier) *UserRepo { return &UserRepo{db: db} }

// Create inserts u and fills ID and CreatedAt. Duplicate emails fail with apperr.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO users (display_name, email, photo_url, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id::text, created_at
    `, u.DisplayName, u.Email, u.PhotoURL, string(u.Role)).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByEmail - returns user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.DisplayName, &u.Email, &u.PhotoURL, &u.Role, &u.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email %q: %w", email, err)
	}
	return &u, nil
}

// List returns users newest first; Search matches display name or email, case-insensitively.
func (r *UserRepo) List(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	var pattern *string
	if s := strings.TrimSpace(f.Search); s != "" {
		p := "%" + escapeLike(s) + "%"
		pattern = &p
	}
	q := `SELECT ` + userColumns + ` FROM users
        WHERE ($1::text IS NULL OR display_name ILIKE $1 OR email ILIKE $1)
        ORDER BY created_at DESC, id`
	q, args := appendPage(q, []any{pattern}, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]domain.User, 0, capacity(f.Limit))
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.DisplayName, &u.Email, &u.PhotoURL, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateRole sets the role of a user and returns true if a row was affected.
func (r *UserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (bool, error) {
	ct, err := r.db.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, string(role))
	if err != nil {
		return false, fmt.Errorf("update user %s role: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateRoleByEmail sets the role of the user with email.
func (r *UserRepo) UpdateRoleByEmail(ctx context.Context, email string, role domain.Role) (bool, error) {
	ct, err := r.db.Exec(ctx, `UPDATE users SET role = $2 WHERE email = $1`, email, string(role))
	if err != nil {
		return false, fmt.Errorf("update user %q role: %w", email, err)
	}
	return ct.RowsAffected() > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
