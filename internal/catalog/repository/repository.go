package repository

import (
	"context"

	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
)

// ProductFilter defines server-side filter criteria for admin product listing.
// The storefront display list is derived in memory by domain.DisplayList; this
// filter only narrows what the database returns.
type ProductFilter struct {
	Category *string
	BrandID  *string
	Search   *string
	Active   *bool
	Page     int
	PerPage  int
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// List returns products matching the given filter along with the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// ListActive returns every active product, newest first. This feeds the
	// in-memory storefront display pipeline.
	ListActive(ctx context.Context) ([]domain.Product, error)

	// Update modifies an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	ListActive(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// BrandRepository defines the interface for brand persistence operations.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	ListAll(ctx context.Context) ([]domain.Brand, error)
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id string) error
}

// BannerRepository defines the interface for banner persistence operations.
type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	GetByID(ctx context.Context, id string) (*domain.Banner, error)
	ListActive(ctx context.Context, position string) ([]domain.Banner, error)
	ListAll(ctx context.Context) ([]domain.Banner, error)
	Update(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id string) error
}
