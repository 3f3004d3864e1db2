//go:generate mockgen -source=contracts.go -destination=payment_mocks_test.go -package=payment_test

package payment

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"parcel-service/internal/domain"
)

// SessionGateway is the payment processor as seen by the workflow.
type SessionGateway interface {
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*domain.SessionStatus, error)
}

// TrackingGenerator issues tracking identifiers.
type TrackingGenerator interface {
	Generate() string
}

type parcelReader interface {
	Get(ctx context.Context, id string) (*domain.Parcel, error)
}

type paymentLister interface {
	ListByPayer(ctx context.Context, email string) ([]domain.PaymentRecord, error)
}

type outcomeCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}
