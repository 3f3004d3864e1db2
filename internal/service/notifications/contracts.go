//go:generate mockgen -source=contracts.go -destination=notifications_mocks_test.go -package=notifications_test

package notifications

import (
	"context"

	"parcel-service/internal/domain"
)

// Confirmer abstracts the payment confirmation workflow triggered by gateway notifications.
type Confirmer interface {
	Confirm(ctx context.Context, sessionRef string) (domain.ConfirmationResult, error)
}
