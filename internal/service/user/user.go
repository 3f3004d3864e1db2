package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
)

// Service manages user accounts.
type Service struct {
	repo             userRepository
	operationTimeout time.Duration
}

// NewService creates a user Service.
func NewService(r userRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create stores a new account with role user. A taken email yields apperr.ErrConflict.
func (s *Service) Create(ctx context.Context, u *domain.User) error {
	if u == nil {
		return apperr.ErrInvalid
	}
	u.Email = strings.TrimSpace(u.Email)
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	if !domain.ValidateEmail(u.Email) {
		return fmt.Errorf("%w: malformed email", apperr.ErrInvalid)
	}
	u.Role = domain.RoleUser

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, u)
}

// List returns users whose display name or email contains the search text.
func (s *Service) List(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	f.Search = strings.TrimSpace(f.Search)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f)
}

// UpdateRole changes the role of an account.
func (s *Service) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	id, ok := domain.ParseID(id)
	if !ok {
		return fmt.Errorf("%w: malformed user id", apperr.ErrInvalid)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", apperr.ErrInvalid, role)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}
