package parceltx

import (
	"context"
	"fmt"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
)

// ErrTrackingIDTaken is returned by UpdateParcel when the tracking id already
// belongs to another parcel. The transaction must be retried as a whole.
var ErrTrackingIDTaken = fmt.Errorf("tracking id taken: %w", apperr.ErrConflict)

// Repository is the set of store operations available inside a parcel transaction.
// Getters return (nil, nil) when the row does not exist.
type Repository interface {
	GetParcelForUpdate(ctx context.Context, id string) (*domain.Parcel, error)
	// UpdateParcel applies u only when pre still holds; false means nothing matched.
	UpdateParcel(ctx context.Context, u domain.ParcelUpdate, pre domain.ParcelPrecondition) (bool, error)
	InsertPayment(ctx context.Context, p *domain.PaymentRecord) error
	GetPaymentByParcelID(ctx context.Context, parcelID string) (*domain.PaymentRecord, error)

	GetRiderForUpdate(ctx context.Context, id string) (*domain.Rider, error)
	UpdateRider(ctx context.Context, u domain.RiderUpdate) (bool, error)

	UpdateUserRoleByEmail(ctx context.Context, email string, role domain.Role) (bool, error)
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
