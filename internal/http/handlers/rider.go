package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcel-service/internal/domain"
	"parcel-service/internal/logx"
)

// RiderHandler serves rider applications and their review.
type RiderHandler struct {
	usecase riderUsecase
	logger  logx.Logger
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(logger logx.Logger, uc riderUsecase) *RiderHandler {
	return &RiderHandler{usecase: uc, logger: logger}
}

// Register handles POST /riders.
func (h *RiderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req createRiderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	rd := req.toModel()
	if err := h.usecase.Register(r.Context(), rd); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, riderToResponse(*rd))
}

// List handles GET /riders?status=&district=&workStatus=.
func (h *RiderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageFromQuery(r)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid paging")
		return
	}
	q := r.URL.Query()
	list, err := h.usecase.List(r.Context(), domain.RiderFilter{
		Status:     domain.RiderStatus(q.Get("status")),
		District:   q.Get("district"),
		WorkStatus: domain.WorkStatus(q.Get("workStatus")),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, mapSlice(list, riderToResponse))
}

// UpdateStatus handles PATCH /riders/{id}/status.
func (h *RiderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateRiderStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	rd, err := h.usecase.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.Email)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, riderToResponse(*rd))
}
