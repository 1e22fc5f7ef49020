package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	catalogservice "github.com/QwabenaBoateng/Angiesplug/internal/catalog/service"
	identitydomain "github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
	identityservice "github.com/QwabenaBoateng/Angiesplug/internal/identity/service"
	mediaservice "github.com/QwabenaBoateng/Angiesplug/internal/media/service"
	orderservice "github.com/QwabenaBoateng/Angiesplug/internal/order/service"
	sessionservice "github.com/QwabenaBoateng/Angiesplug/internal/session/service"
	"github.com/QwabenaBoateng/Angiesplug/pkg/health"
	pkgmiddleware "github.com/QwabenaBoateng/Angiesplug/pkg/middleware"
)

// Services bundles everything the router needs.
type Services struct {
	Identity   *identityservice.IdentityService
	Sessions   *sessionservice.Manager
	Products   *catalogservice.ProductService
	Categories *catalogservice.CategoryService
	Brands     *catalogservice.BrandService
	Banners    *catalogservice.BannerService
	Orders     *orderservice.OrderService
	Media      *mediaservice.MediaService
}

// NewRouter creates a chi router with the full storefront and admin API.
func NewRouter(svc *Services, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack (applied in order).
	r.Use(pkgmiddleware.CORS)
	r.Use(pkgmiddleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(pkgmiddleware.RequestLogging(logger))
	r.Use(pkgmiddleware.PrometheusMetrics("angiesplug"))
	r.Use(pkgmiddleware.Tracing("angiesplug"))
	r.Use(pkgmiddleware.RequestLogger(logger))

	// Health and metrics endpoints (no auth, no session).
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	authHandler := NewAuthHandler(svc.Identity, logger)
	cartHandler := NewCartHandler(svc.Products, logger)
	sessionHandler := NewSessionHandler(svc.Products, logger)
	productHandler := NewProductHandler(svc.Products, logger)
	categoryHandler := NewCategoryHandler(svc.Categories, logger)
	brandHandler := NewBrandHandler(svc.Brands, logger)
	bannerHandler := NewBannerHandler(svc.Banners, logger)
	orderHandler := NewOrderHandler(svc.Orders, logger)
	mediaHandler := NewMediaHandler(svc.Media, logger)
	userHandler := NewUserHandler(svc.Identity, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(Authenticate(svc.Identity))

		// Storefront catalog, no session needed.
		r.Get("/products", productHandler.ListStorefront)
		r.Get("/products/{idOrSlug}", productHandler.GetProduct)
		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/brands", brandHandler.ListBrands)
		r.Get("/banners", bannerHandler.ListBanners)

		// Session-scoped state: auth binding, cart, filters, checkout.
		r.Group(func(r chi.Router) {
			r.Use(Session(svc.Sessions))

			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/auth/refresh", authHandler.Refresh)
			r.Get("/auth/session", authHandler.GetSession)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productID}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)

			r.Get("/session", sessionHandler.GetState)
			r.Put("/session/filters", sessionHandler.SetFilters)
			r.Put("/session/search", sessionHandler.SetSearch)

			r.Post("/checkout", orderHandler.Checkout)
			r.Get("/orders", orderHandler.ListMyOrders)
			r.Get("/orders/{id}", orderHandler.GetOrder)
		})

		// Back-office routes, capability-gated.
		r.Route("/admin", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(RequireCapability(identitydomain.CapabilityManageCatalog))

				r.Get("/products", productHandler.ListAdmin)
				r.Post("/products", productHandler.CreateProduct)
				r.Put("/products/{id}", productHandler.UpdateProduct)
				r.Delete("/products/{id}", productHandler.DeleteProduct)

				r.Post("/categories", categoryHandler.CreateCategory)
				r.Put("/categories/{id}", categoryHandler.UpdateCategory)
				r.Delete("/categories/{id}", categoryHandler.DeleteCategory)

				r.Post("/brands", brandHandler.CreateBrand)
				r.Put("/brands/{id}", brandHandler.UpdateBrand)
				r.Delete("/brands/{id}", brandHandler.DeleteBrand)

				r.Get("/banners", bannerHandler.ListAllBanners)
				r.Post("/banners", bannerHandler.CreateBanner)
				r.Put("/banners/{id}", bannerHandler.UpdateBanner)
				r.Delete("/banners/{id}", bannerHandler.DeleteBanner)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireCapability(identitydomain.CapabilityManageOrders))

				r.Get("/orders", orderHandler.ListOrders)
				r.Put("/orders/{id}/status", orderHandler.UpdateStatus)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireCapability(identitydomain.CapabilityManageMedia))

				r.Post("/media", mediaHandler.UploadMedia)
				r.Get("/media/{id}", mediaHandler.GetMedia)
				r.Get("/media/owner/{ownerType}/{ownerID}", mediaHandler.ListMediaByOwner)
				r.Put("/media/{id}", mediaHandler.UpdateMedia)
				r.Delete("/media/{id}", mediaHandler.DeleteMedia)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireCapability(identitydomain.CapabilityManageUsers))

				r.Get("/users", userHandler.ListUsers)
				r.Put("/users/{id}/role", userHandler.UpdateUserRole)
			})
		})
	})

	return r
}
