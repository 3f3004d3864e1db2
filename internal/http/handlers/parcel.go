package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcel-service/internal/domain"
	"parcel-service/internal/logx"
)

// ParcelHandler serves HTTP endpoints for parcel resources.
type ParcelHandler struct {
	parcels parcelUsecase
	assign  assignmentUsecase
	logger  logx.Logger
}

// NewParcelHandler creates a new ParcelHandler.
func NewParcelHandler(logger logx.Logger, parcels parcelUsecase, assign assignmentUsecase) *ParcelHandler {
	return &ParcelHandler{parcels: parcels, assign: assign, logger: logger}
}

// Create handles POST /parcels.
func (h *ParcelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createParcelRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	p := req.toModel()
	if err := h.parcels.Create(r.Context(), p); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/parcels/"+p.ID)
	writeJSON(h.logger, w, r, http.StatusCreated, parcelToResponse(*p))
}

// List handles GET /parcels?email=&deliveryStatus=.
func (h *ParcelHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageFromQuery(r)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid paging")
		return
	}
	q := r.URL.Query()
	list, err := h.parcels.List(r.Context(), domain.ParcelFilter{
		SenderEmail:    q.Get("email"),
		DeliveryStatus: domain.DeliveryStatus(q.Get("deliveryStatus")),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, mapSlice(list, parcelToResponse))
}

// GetByID handles GET /parcels/{id}.
func (h *ParcelHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.parcels.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, parcelToResponse(*p))
}

// Assign handles PATCH /parcels/{id}/assign.
func (h *ParcelHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignParcelRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.assign.Assign(r.Context(), domain.AssignCommand{
		ParcelID:   chi.URLParam(r, "id"),
		RiderID:    req.RiderID,
		RiderName:  req.RiderName,
		RiderEmail: req.RiderEmail,
	})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentToResponse(res))
}
