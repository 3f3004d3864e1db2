package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"

	"parcel-service/internal/apperr"
	"parcel-service/internal/domain"
	"parcel-service/internal/logx"
)

// Metadata keys attached to every checkout session.
const (
	MetaParcelID   = "parcelId"
	MetaParcelName = "parcelName"
)

const (
	opCreate   = "create_session"
	opRetrieve = "retrieve_session"
)

// Config holds the gateway settings that are not credentials.
type Config struct {
	SiteDomain string
	Currency   string
	Timeout    time.Duration
}

// sessionAPI is the subset of Stripe Checkout used by the gateway.
type sessionAPI interface {
	New(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(ctx context.Context, id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeSessions struct{}

func (stripeSessions) New(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return session.New(params)
}

func (stripeSessions) Get(ctx context.Context, id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return session.Get(id, params)
}

// StripeGateway opens and inspects Stripe Checkout sessions. It never retries.
type StripeGateway struct {
	api       sessionAPI
	cfg       Config
	logger    logx.Logger
	durations prometheus.ObserverVec
}

// NewStripeGateway initializes Stripe with secret and returns a gateway.
func NewStripeGateway(secret string, cfg Config, logger logx.Logger, durations prometheus.ObserverVec) (*StripeGateway, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("stripe secret is required")
	}
	stripe.Key = secret
	return newGateway(stripeSessions{}, cfg, logger, durations), nil
}

func newGateway(api sessionAPI, cfg Config, logger logx.Logger, durations prometheus.ObserverVec) *StripeGateway {
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	cfg.SiteDomain = strings.TrimRight(cfg.SiteDomain, "/")
	return &StripeGateway{api: api, cfg: cfg, logger: logger, durations: durations}
}

// CreateCheckoutSession opens a one-item payment session for a parcel.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	amount, err := ToMinorUnits(req.Cost)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(g.cfg.Currency),
				UnitAmount: stripe.Int64(amount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(req.ParcelName),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.cfg.SiteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.cfg.SiteDomain + "/dashboard/payment-cancelled"),
	}
	if req.PayerEmail != "" {
		params.CustomerEmail = stripe.String(req.PayerEmail)
	}
	params.AddMetadata(MetaParcelID, req.ParcelID)
	params.AddMetadata(MetaParcelName, req.ParcelName)

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	s, err := g.api.New(ctx, params)
	g.observe(opCreate, start, err)
	if err != nil {
		g.logger.Warn("checkout session rejected",
			logx.String("parcel_id", req.ParcelID),
			logx.Err(err),
		)
		return nil, mapError(opCreate, err)
	}
	return &domain.CheckoutSession{SessionID: s.ID, RedirectURL: s.URL}, nil
}

// RetrieveSession returns the current state of a checkout session.
func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*domain.SessionStatus, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	s, err := g.api.Get(ctx, sessionID, &stripe.CheckoutSessionParams{})
	g.observe(opRetrieve, start, err)
	if err != nil {
		return nil, mapError(opRetrieve, err)
	}
	if s == nil {
		return nil, fmt.Errorf("payment gateway: %s: %w: %w", opRetrieve, apperr.ErrGateway, apperr.ErrNotFound)
	}
	st := toSessionStatus(s)
	return &st, nil
}

func (g *StripeGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.cfg.Timeout)
}

func (g *StripeGateway) observe(op string, start time.Time, err error) {
	if g.durations == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	g.durations.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

func toSessionStatus(s *stripe.CheckoutSession) domain.SessionStatus {
	st := domain.SessionStatus{
		SessionID:            s.ID,
		Paid:                 s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal:          s.AmountTotal,
		Currency:             string(s.Currency),
		PayerEmail:           s.CustomerEmail,
		ParcelID:             s.Metadata[MetaParcelID],
		ParcelName:           s.Metadata[MetaParcelName],
		TransactionReference: s.ID,
	}
	if st.PayerEmail == "" && s.CustomerDetails != nil {
		st.PayerEmail = s.CustomerDetails.Email
	}
	if s.PaymentIntent != nil && s.PaymentIntent.ID != "" {
		st.TransactionReference = s.PaymentIntent.ID
	}
	return st
}

func mapError(op string, err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && (se.HTTPStatusCode == http.StatusNotFound || se.Code == stripe.ErrorCodeResourceMissing) {
		return fmt.Errorf("payment gateway: %s: %w: %w", op, apperr.ErrGateway, apperr.ErrNotFound)
	}
	return fmt.Errorf("payment gateway: %s: %w: %w", op, apperr.ErrGateway, err)
}
