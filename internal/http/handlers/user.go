package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parcel-service/internal/domain"
	"parcel-service/internal/logx"
)

// UserHandler serves user account endpoints.
type UserHandler struct {
	usecase userUsecase
	logger  logx.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(logger logx.Logger, uc userUsecase) *UserHandler {
	return &UserHandler{usecase: uc, logger: logger}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	u := req.toModel()
	if err := h.usecase.Create(r.Context(), u); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, userToResponse(*u))
}

// List handles GET /users?search=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageFromQuery(r)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid paging")
		return
	}
	list, err := h.usecase.List(r.Context(), domain.UserFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, mapSlice(list, userToResponse))
}

// UpdateRole handles PATCH /users/{id}/role.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if err := h.usecase.UpdateRole(r.Context(), chi.URLParam(r, "id"), req.Role); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
}
