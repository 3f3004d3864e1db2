package handlers

import (
	"net/http"
	"strings"

	"parcel-service/internal/logx"
)

// PaymentHandler serves checkout, confirmation and payment history endpoints.
type PaymentHandler struct {
	usecase paymentUsecase
	logger  logx.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(logger logx.Logger, uc paymentUsecase) *PaymentHandler {
	return &PaymentHandler{usecase: uc, logger: logger}
}

// CreateCheckoutSession handles POST /payments/checkout-session.
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	cs, err := h.usecase.CreateCheckout(r.Context(), req.ParcelID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, checkoutDTO{SessionID: cs.SessionID, URL: cs.RedirectURL})
}

// Confirm handles PATCH /payments/confirm?session_id=.
// An unpaid session answers 200 with success=false and code not_paid.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("session_id"))

	res, err := h.usecase.Confirm(r.Context(), ref)
	if err != nil {
		status := statusOf(err)
		body := confirmationFailure(err)
		if status == http.StatusInternalServerError {
			body.Error = "internal error"
		}
		writeJSON(h.logger, w, r, status, body)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, confirmationToResponse(res))
}

// History handles GET /payments?email=.
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.History(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, mapSlice(list, paymentToResponse))
}
