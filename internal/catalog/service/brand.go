package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/repository"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
	"github.com/QwabenaBoateng/Angiesplug/pkg/slug"
)

// BrandService implements the business logic for brand operations.
type BrandService struct {
	repo   repository.BrandRepository
	logger *slog.Logger
}

// NewBrandService creates a new brand service.
func NewBrandService(repo repository.BrandRepository, logger *slog.Logger) *BrandService {
	return &BrandService{repo: repo, logger: logger}
}

// CreateBrand creates a new brand.
func (s *BrandService) CreateBrand(ctx context.Context, input *domain.CreateBrandInput) (*domain.Brand, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("brand name is required")
	}

	now := time.Now().UTC()
	brand := &domain.Brand{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Slug:      slug.Generate(input.Name),
		LogoURL:   input.LogoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand created",
		slog.String("brand_id", brand.ID),
		slog.String("slug", brand.Slug),
	)

	return brand, nil
}

// GetBrand retrieves a brand by its ID.
func (s *BrandService) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return brand, nil
}

// ListBrands returns every brand ordered by name.
func (s *BrandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// UpdateBrand applies partial updates to an existing brand.
func (s *BrandService) UpdateBrand(ctx context.Context, id string, input *domain.UpdateBrandInput) (*domain.Brand, error) {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get brand for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("brand name must not be empty")
		}
		brand.Name = *input.Name
		brand.Slug = slug.Generate(*input.Name)
	}

	if input.LogoURL != nil {
		brand.LogoURL = input.LogoURL
	}

	brand.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, fmt.Errorf("update brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand updated",
		slog.String("brand_id", brand.ID),
	)

	return brand, nil
}

// DeleteBrand removes a brand by its ID.
func (s *BrandService) DeleteBrand(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand deleted",
		slog.String("brand_id", id),
	)

	return nil
}
