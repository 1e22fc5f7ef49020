package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/service"
	"github.com/QwabenaBoateng/Angiesplug/pkg/httputil"
	"github.com/QwabenaBoateng/Angiesplug/pkg/validator"
)

// BannerHandler handles HTTP requests for banner endpoints.
type BannerHandler struct {
	service *service.BannerService
	logger  *slog.Logger
}

// NewBannerHandler creates a new banner HTTP handler.
func NewBannerHandler(svc *service.BannerService, logger *slog.Logger) *BannerHandler {
	return &BannerHandler{
		service: svc,
		logger:  logger,
	}
}

// ListBanners handles GET /api/v1/banners. Only banners active and inside
// their schedule window are returned; position narrows the slot.
func (h *BannerHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	position := r.URL.Query().Get("position")

	banners, err := h.service.ListActiveBanners(r.Context(), position)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: banners})
}

// ListAllBanners handles GET /api/v1/admin/banners
func (h *BannerHandler) ListAllBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.ListAllBanners(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: banners})
}

// CreateBanner handles POST /api/v1/admin/banners
func (h *BannerHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req domain.CreateBannerInput
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

	banner, err := h.service.CreateBanner(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: banner})
}

// UpdateBanner handles PUT /api/v1/admin/banners/{id}
func (h *BannerHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req domain.UpdateBannerInput
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

	banner, err := h.service.UpdateBanner(r.Context(), id, &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: banner})
}

// DeleteBanner handles DELETE /api/v1/admin/banners/{id}
func (h *BannerHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteBanner(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}
