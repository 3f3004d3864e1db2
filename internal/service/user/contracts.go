package user

import (
	"context"

	"parcel-service/internal/domain"
)

type userRepository interface {
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context, f domain.UserFilter) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (bool, error)
}
