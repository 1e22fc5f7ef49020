package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	catalogservice "github.com/QwabenaBoateng/Angiesplug/internal/catalog/service"
	identitydomain "github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
)

func storefrontRouter(repo *mockProductRepo) *chi.Mux {
	logger := handlerTestLogger()
	products := catalogservice.NewProductService(repo, noopProductPublisher{}, logger)
	handler := NewProductHandler(products, logger)

	r := chi.NewRouter()
	r.Get("/api/v1/products", handler.ListStorefront)
	r.Get("/api/v1/products/{idOrSlug}", handler.GetProduct)
	return r
}

// injectUser fakes an authenticated request without minting a real token.
func injectUser(user *identitydomain.SessionUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func catalogFixture() []catalogdomain.Product {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return []catalogdomain.Product{
		{ID: "a", Name: "Classic White T-Shirt", Category: "Men", Price: 1000, IsActive: true, CreatedAt: base},
		{ID: "b", Name: "Denim Jacket", Category: "Men", Price: 3000, IsActive: true, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Name: "Silk Scarf", Category: "Accessories", Price: 2000, IsActive: true, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func decodeProducts(t *testing.T, rec *httptest.ResponseRecorder) []catalogdomain.Product {
	t.Helper()

	var envelope struct {
		Data []catalogdomain.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Data
}

func TestListStorefront_AppliesPipeline(t *testing.T) {
	repo := new(mockProductRepo)
	router := storefrontRouter(repo)

	repo.On("ListActive", mock.Anything).Return(catalogFixture(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=Men&sort=price_asc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	products := decodeProducts(t, rec)
	require.Len(t, products, 2)
	assert.Equal(t, "a", products[0].ID)
	assert.Equal(t, "b", products[1].ID)
}

func TestListStorefront_SearchIsCaseInsensitive(t *testing.T) {
	repo := new(mockProductRepo)
	router := storefrontRouter(repo)

	repo.On("ListActive", mock.Anything).Return(catalogFixture(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?search=WHITE", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	products := decodeProducts(t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "Classic White T-Shirt", products[0].Name)
}

func TestListStorefront_InvalidPriceParam(t *testing.T) {
	repo := new(mockProductRepo)
	router := storefrontRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?min_price=cheap", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes_CapabilityGate(t *testing.T) {
	tests := []struct {
		name string
		user *identitydomain.SessionUser
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"regular user", &identitydomain.SessionUser{ID: "u1", Role: identitydomain.RoleUser}, http.StatusForbidden},
		{"admin", &identitydomain.SessionUser{ID: "a1", Role: identitydomain.RoleAdmin}, http.StatusOK},
		{"super admin", &identitydomain.SessionUser{ID: "s1", Role: identitydomain.RoleSuperAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Use(injectUser(tt.user))
			r.Use(RequireCapability(identitydomain.CapabilityManageCatalog))
			r.Get("/admin/products", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAdminUsersRoute_AdminLacksManageUsers(t *testing.T) {
	r := chi.NewRouter()
	r.Use(injectUser(&identitydomain.SessionUser{ID: "a1", Role: identitydomain.RoleAdmin}))
	r.Use(RequireCapability(identitydomain.CapabilityManageUsers))
	r.Get("/admin/users", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
