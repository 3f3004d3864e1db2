package rider

import (
	"context"

	"parcel-service/internal/domain"
)

type riderRepository interface {
	Create(ctx context.Context, r *domain.Rider) error
	List(ctx context.Context, f domain.RiderFilter) ([]domain.Rider, error)
}
