package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/QwabenaBoateng/Angiesplug/internal/media/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/media/service"
	"github.com/QwabenaBoateng/Angiesplug/pkg/httputil"
)

// MediaHandler handles HTTP requests for media endpoints.
type MediaHandler struct {
	service *service.MediaService
	logger  *slog.Logger
}

// NewMediaHandler creates a new media HTTP handler.
func NewMediaHandler(svc *service.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		service: svc,
		logger:  logger,
	}
}

// UpdateMediaRequest is the JSON request body for updating media metadata.
type UpdateMediaRequest struct {
	AltText   *string `json:"alt_text"`
	SortOrder *int    `json:"sort_order"`
}

// UploadMedia handles POST /api/v1/admin/media (multipart/form-data).
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	// The video ceiling bounds the request; the per-type limit is enforced
	// by the service once the content type is known.
	maxSize := domain.MaxVideoSize + (1 << 20)
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(domain.MaxImageSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "file is required: " + err.Error()},
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &service.UploadMediaInput{
		OwnerID:     r.FormValue("owner_id"),
		OwnerType:   r.FormValue("owner_type"),
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
		AltText:     r.FormValue("alt_text"),
	}

	media, err := h.service.UploadMedia(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: media})
}

// GetMedia handles GET /api/v1/admin/media/{id}
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "media id is required"},
		})
		return
	}

	media, err := h.service.GetMedia(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: media})
}

// ListMediaByOwner handles GET /api/v1/admin/media/owner/{ownerType}/{ownerID}
func (h *MediaHandler) ListMediaByOwner(w http.ResponseWriter, r *http.Request) {
	ownerType := chi.URLParam(r, "ownerType")
	ownerID := chi.URLParam(r, "ownerID")

	if ownerType == "" || ownerID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "owner type and owner id are required"},
		})
		return
	}

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

	mediaFiles, total, err := h.service.ListMediaByOwner(r.Context(), ownerID, ownerType, page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(mediaFiles, total, page, perPage))
}

// UpdateMedia handles PUT /api/v1/admin/media/{id}
func (h *MediaHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	media, err := h.service.UpdateMediaMetadata(r.Context(), id, &service.UpdateMediaInput{
		AltText:   req.AltText,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: media})
}

// DeleteMedia handles DELETE /api/v1/admin/media/{id}
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteMedia(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}
