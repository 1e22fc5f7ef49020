package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	identityservice "github.com/QwabenaBoateng/Angiesplug/internal/identity/service"
	"github.com/QwabenaBoateng/Angiesplug/pkg/httputil"
	"github.com/QwabenaBoateng/Angiesplug/pkg/validator"
)

// AuthHandler handles HTTP requests for authentication endpoints.
type AuthHandler struct {
	identity *identityservice.IdentityService
	logger   *slog.Logger
}

// NewAuthHandler creates a new authentication HTTP handler.
func NewAuthHandler(identity *identityservice.IdentityService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		logger:   logger,
	}
}

// LoginRequest is the JSON request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the JSON request body for refreshing tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req identityservice.RegisterInput
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

	profile, err := h.identity.Register(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: profile})
}

// Login handles POST /api/v1/auth/login. On success the signed-in user is
// also bound to the caller's session store so the cart and identity travel
// together through Commit.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req LoginRequest
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

	result, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if store := StoreFromContext(r.Context()); store != nil {
		store.SetUser(result.User)
		if err := store.Commit(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to persist session after login",
				slog.String("session_id", store.SessionID()),
				slog.String("error", err.Error()),
			)
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Logout handles POST /api/v1/auth/logout. It signs the user out of the
// session store; the access token simply expires on its own.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if store := StoreFromContext(r.Context()); store != nil {
		store.SetUser(nil)
		if err := store.Commit(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to persist session after logout",
				slog.String("session_id", store.SessionID()),
				slog.String("error", err.Error()),
			)
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "signed_out"}})
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req RefreshRequest
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

	result, err := h.identity.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// GetSession handles GET /api/v1/auth/session. It reports the current user,
// preferring the bearer token and falling back to the session store.
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		if store := StoreFromContext(r.Context()); store != nil {
			user = store.User()
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"user": user}})
}
