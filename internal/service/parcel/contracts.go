package parcel

import (
	"context"

	"parcel-service/internal/domain"
)

// parcelRepository defines storage operations required by the business layer.
type parcelRepository interface {
	Get(ctx context.Context, id string) (*domain.Parcel, error)
	List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error)
	Create(ctx context.Context, p *domain.Parcel) error
}
