package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcel-service/internal/domain"
)

func withURLParam(r *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type stubParcels struct {
	createFn func(ctx context.Context, p *domain.Parcel) error
	getFn    func(ctx context.Context, id string) (*domain.Parcel, error)
	listFn   func(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error)
}

func (s *stubParcels) Create(ctx context.Context, p *domain.Parcel) error {
	if s.createFn == nil {
		panic("Create not expected in this test")
	}
	return s.createFn(ctx, p)
}

func (s *stubParcels) Get(ctx context.Context, id string) (*domain.Parcel, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(ctx, id)
}

func (s *stubParcels) List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error) {
	if s.listFn == nil {
		panic("List not expected in this test")
	}
	return s.listFn(ctx, f)
}

type stubAssign struct {
	assignFn func(ctx context.Context, cmd domain.AssignCommand) (domain.AssignmentResult, error)
}

func (s *stubAssign) Assign(ctx context.Context, cmd domain.AssignCommand) (domain.AssignmentResult, error) {
	if s.assignFn == nil {
		panic("Assign not expected in this test")
	}
	return s.assignFn(ctx, cmd)
}

type stubPayments struct {
	checkoutFn func(ctx context.Context, parcelID string) (*domain.CheckoutSession, error)
	confirmFn  func(ctx context.Context, ref string) (domain.ConfirmationResult, error)
	historyFn  func(ctx context.Context, email string) ([]domain.PaymentRecord, error)
}

func (s *stubPayments) CreateCheckout(ctx context.Context, parcelID string) (*domain.CheckoutSession, error) {
	if s.checkoutFn == nil {
		panic("CreateCheckout not expected in this test")
	}
	return s.checkoutFn(ctx, parcelID)
}

func (s *stubPayments) Confirm(ctx context.Context, ref string) (domain.ConfirmationResult, error) {
	if s.confirmFn == nil {
		panic("Confirm not expected in this test")
	}
	return s.confirmFn(ctx, ref)
}

func (s *stubPayments) History(ctx context.Context, email string) ([]domain.PaymentRecord, error) {
	if s.historyFn == nil {
		panic("History not expected in this test")
	}
	return s.historyFn(ctx, email)
}

type stubRiders struct {
	registerFn func(ctx context.Context, r *domain.Rider) error
	listFn     func(ctx context.Context, f domain.RiderFilter) ([]domain.Rider, error)
	updateFn   func(ctx context.Context, id string, status domain.RiderStatus, email string) (*domain.Rider, error)
}

func (s *stubRiders) Register(ctx context.Context, r *domain.Rider) error {
	if s.registerFn == nil {
		panic("Register not expected in this test")
	}
	return s.registerFn(ctx, r)
}

func (s *stubRiders) List(ctx context.Context, f domain.RiderFilter) ([]domain.Rider, error) {
	if s.listFn == nil {
		panic("List not expected in this test")
	}
	return s.listFn(ctx, f)
}

func (s *stubRiders) UpdateStatus(ctx context.Context, id string, status domain.RiderStatus, email string) (*domain.Rider, error) {
	if s.updateFn == nil {
		panic("UpdateStatus not expected in this test")
	}
	return s.updateFn(ctx, id, status, email)
}

type stubUsers struct {
	createFn     func(ctx context.Context, u *domain.User) error
	listFn       func(ctx context.Context, f domain.UserFilter) ([]domain.User, error)
	updateRoleFn func(ctx context.Context, id string, role domain.Role) error
}

func (s *stubUsers) Create(ctx context.Context, u *domain.User) error {
	if s.createFn == nil {
		panic("Create not expected in this test")
	}
	return s.createFn(ctx, u)
}

func (s *stubUsers) List(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	if s.listFn == nil {
		panic("List not expected in this test")
	}
	return s.listFn(ctx, f)
}

func (s *stubUsers) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	if s.updateRoleFn == nil {
		panic("UpdateRole not expected in this test")
	}
	return s.updateRoleFn(ctx, id, role)
}
