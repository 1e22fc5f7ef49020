package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/repository"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
	"github.com/QwabenaBoateng/Angiesplug/pkg/slug"
)

// ProductEventPublisher publishes product lifecycle events.
type ProductEventPublisher interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductUpdated(ctx context.Context, product *domain.Product) error
	PublishProductDeleted(ctx context.Context, id string) error
}

// ProductService implements the business logic for product operations.
type ProductService struct {
	repo     repository.ProductRepository
	producer ProductEventPublisher
	logger   *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, producer ProductEventPublisher, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateProduct creates a new product with the given input.
func (s *ProductService) CreateProduct(ctx context.Context, input *domain.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Category == "" {
		return nil, apperrors.InvalidInput("product category is required")
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, apperrors.InvalidInput("currency must be a 3-letter ISO code")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		Category:    input.Category,
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
		Price:       input.Price,
		Currency:    strings.ToUpper(currency),
		Sizes:       input.Sizes,
		Colors:      input.Colors,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// GetProduct retrieves a product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// GetProductBySlug retrieves a product by its slug.
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return product, nil
}

// ListProducts returns a filtered, paginated list of products for the admin console.
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

// StorefrontList loads every active product and derives the display list from
// the given filter params. Filtering and sorting happen in memory so the
// result ordering is identical to what the client-side pipeline produced.
func (s *ProductService) StorefrontList(ctx context.Context, params domain.FilterParams) ([]domain.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return domain.DisplayList(products, params), nil
}

// UpdateProduct applies partial updates to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *domain.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("product name must not be empty")
		}
		product.Name = *input.Name
		product.Slug = slug.Generate(*input.Name)
	}

	if input.Description != nil {
		product.Description = *input.Description
	}

	if input.Category != nil {
		if *input.Category == "" {
			return nil, apperrors.InvalidInput("product category must not be empty")
		}
		product.Category = *input.Category
	}

	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}

	if input.BrandID != nil {
		product.BrandID = input.BrandID
	}

	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("price must not be negative")
		}
		product.Price = *input.Price
	}

	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > 5 {
			return nil, apperrors.InvalidInput("rating must be between 0 and 5")
		}
		product.Rating = *input.Rating
	}

	if input.Sizes != nil {
		product.Sizes = input.Sizes
	}

	if input.Colors != nil {
		product.Colors = input.Colors
	}

	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}

	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// DeleteProduct removes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	// Verify the product exists before deleting.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get product for delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}
