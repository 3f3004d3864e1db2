package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"parcel-service/internal/http/handlers"
	"parcel-service/internal/http/middleware"
	"parcel-service/internal/http/middleware/ratelimit"
	"parcel-service/internal/logx"
)

// Rate limit scopes.
const (
	ScopeAPI      = "api"
	ScopePayments = "payments"
)

// Deps are the handlers and middleware the router mounts. RateLimit and Metrics may be nil.
type Deps struct {
	Logger         logx.Logger
	Base           *handlers.Handlers
	Parcels        *handlers.ParcelHandler
	Payments       *handlers.PaymentHandler
	Riders         *handlers.RiderHandler
	Users          *handlers.UserHandler
	HTTPMetrics    middleware.HTTPMetrics
	RateLimit      *ratelimit.Middleware
	Metrics        http.Handler
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 10 * time.Second
	}
	if d.RateLimit == nil {
		d.RateLimit = ratelimit.New(d.Logger, nil, nil)
	}
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observability(d.Logger, d.HTTPMetrics))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(d.RequestTimeout))
		r.Use(d.RateLimit.Handler(ScopeAPI))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", d.Users.Create)
			r.Get("/", d.Users.List)
			r.Patch("/{id}/role", d.Users.UpdateRole)
		})
		r.Route("/parcels", func(r chi.Router) {
			r.Post("/", d.Parcels.Create)
			r.Get("/", d.Parcels.List)
			r.Get("/{id}", d.Parcels.GetByID)
			r.Patch("/{id}/assign", d.Parcels.Assign)
		})
		r.Route("/riders", func(r chi.Router) {
			r.Post("/", d.Riders.Register)
			r.Get("/", d.Riders.List)
			r.Patch("/{id}/status", d.Riders.UpdateStatus)
		})
	})

	r.Route("/payments", func(r chi.Router) {
		r.Use(chimw.Timeout(d.RequestTimeout))
		r.Use(d.RateLimit.Handler(ScopePayments))

		r.Post("/checkout-session", d.Payments.CreateCheckoutSession)
		r.Patch("/confirm", d.Payments.Confirm)
		r.Get("/", d.Payments.History)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))
	return r
}
