package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	identityservice "github.com/QwabenaBoateng/Angiesplug/internal/identity/service"
	"github.com/QwabenaBoateng/Angiesplug/pkg/httputil"
	"github.com/QwabenaBoateng/Angiesplug/pkg/validator"
)

// UserHandler handles HTTP requests for user administration endpoints.
type UserHandler struct {
	identity *identityservice.IdentityService
	logger   *slog.Logger
}

// NewUserHandler creates a new user administration HTTP handler.
func NewUserHandler(identity *identityservice.IdentityService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		identity: identity,
		logger:   logger,
	}
}

// UpdateRoleRequest is the JSON request body for changing a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ListUsers handles GET /api/v1/admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := 1
	perPage := 20

	if v := r.URL.Query().Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "page must be a valid positive integer"},
			})
			return
		}
		page = p
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		pp, err := strconv.Atoi(v)
		if err != nil || pp < 1 || pp > 100 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "per_page must be a valid integer between 1 and 100"},
			})
			return
		}
		perPage = pp
	}

	profiles, total, err := h.identity.ListUsers(r.Context(), UserFromContext(r.Context()), page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(profiles, total, page, perPage))
}

// UpdateUserRole handles PUT /api/v1/admin/users/{id}/role
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.identity.UpdateUserRole(r.Context(), UserFromContext(r.Context()), id, req.Role); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "role": req.Role}})
}
