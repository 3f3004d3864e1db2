package handlers

import (
	"context"

	"parcel-service/internal/domain"
	"parcel-service/internal/service/assignment"
	"parcel-service/internal/service/parcel"
	"parcel-service/internal/service/payment"
	"parcel-service/internal/service/rider"
	"parcel-service/internal/service/user"
)

type parcelUsecase interface {
	Create(ctx context.Context, p *domain.Parcel) error
	Get(ctx context.Context, id string) (*domain.Parcel, error)
	List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error)
}

// NewParcelUsecase wires a parcel.Service into a parcelUsecase.
func NewParcelUsecase(svc *parcel.Service) parcelUsecase {
	return svc
}

type assignmentUsecase interface {
	Assign(ctx context.Context, cmd domain.AssignCommand) (domain.AssignmentResult, error)
}

// NewAssignmentUsecase wires an assignment.Service into an assignmentUsecase.
func NewAssignmentUsecase(svc *assignment.Service) assignmentUsecase {
	return svc
}

type paymentUsecase interface {
	CreateCheckout(ctx context.Context, parcelID string) (*domain.CheckoutSession, error)
	Confirm(ctx context.Context, sessionRef string) (domain.ConfirmationResult, error)
	History(ctx context.Context, payerEmail string) ([]domain.PaymentRecord, error)
}

// NewPaymentUsecase wires a payment.Service into a paymentUsecase.
func NewPaymentUsecase(svc *payment.Service) paymentUsecase {
	return svc
}

type riderUsecase interface {
	Register(ctx context.Context, r *domain.Rider) error
	List(ctx context.Context, f domain.RiderFilter) ([]domain.Rider, error)
	UpdateStatus(ctx context.Context, id string, status domain.RiderStatus, email string) (*domain.Rider, error)
}

// NewRiderUsecase wires a rider.Service into a riderUsecase.
func NewRiderUsecase(svc *rider.Service) riderUsecase {
	return svc
}

type userUsecase interface {
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context, f domain.UserFilter) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
}

// NewUserUsecase wires a user.Service into a userUsecase.
func NewUserUsecase(svc *user.Service) userUsecase {
	return svc
}
