package http

import (
	"context"
	"net/http"

	identitydomain "github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
	identityservice "github.com/QwabenaBoateng/Angiesplug/internal/identity/service"
	sessionservice "github.com/QwabenaBoateng/Angiesplug/internal/session/service"
	"github.com/QwabenaBoateng/Angiesplug/pkg/httputil"
)

// SessionIDHeader carries the opaque session identifier. The server mints one
// on first contact and echoes it back so the client can replay it.
const SessionIDHeader = "X-Session-ID"

type contextKey string

const (
	storeContextKey contextKey = "session_store"
	userContextKey  contextKey = "session_user"
)

// ContentTypeJSON sets the response content type for API routes.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Session resolves the per-session state store from the X-Session-ID header,
// minting a fresh session when the header is absent, and injects the store
// into the request context. The assigned ID is always echoed back.
func Session(manager *sessionservice.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionIDHeader)
			if sessionID == "" {
				sessionID = manager.NewSessionID()
			}

			store, err := manager.Get(r.Context(), sessionID)
			if err != nil {
				httputil.WriteJSON(w, http.StatusInternalServerError, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "SESSION_ERROR", Message: "failed to load session state"},
				})
				return
			}

			w.Header().Set(SessionIDHeader, sessionID)

			ctx := context.WithValue(r.Context(), storeContextKey, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate resolves the bearer token into a SessionUser and injects it
// into the request context. Requests without a token pass through anonymous;
// route guards decide whether that is acceptable.
func Authenticate(identity *identityservice.IdentityService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := identity.GetSession(token)
			if err != nil {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired token"},
				})
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCapability rejects requests whose user lacks the given capability.
// Every role-gated route goes through this one check.
func RequireCapability(c identitydomain.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
				})
				return
			}
			if !identitydomain.HasCapability(user, c) {
				httputil.WriteJSON(w, http.StatusForbidden, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "FORBIDDEN", Message: "insufficient permissions"},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// StoreFromContext extracts the session store injected by Session, or nil.
func StoreFromContext(ctx context.Context) *sessionservice.Store {
	if store, ok := ctx.Value(storeContextKey).(*sessionservice.Store); ok {
		return store
	}
	return nil
}

// UserFromContext extracts the authenticated user, or nil when anonymous.
func UserFromContext(ctx context.Context) *identitydomain.SessionUser {
	if user, ok := ctx.Value(userContextKey).(*identitydomain.SessionUser); ok {
		return user
	}
	return nil
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && (header[:len(prefix)] == prefix || header[:len(prefix)] == "bearer ") {
		return header[len(prefix):]
	}
	return ""
}
