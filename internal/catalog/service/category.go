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

// CategoryService implements the business logic for category operations.
type CategoryService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, input *domain.CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("category name is required")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Slug:      slug.Generate(input.Name),
		SortOrder: input.SortOrder,
		IsActive:  active,
		ImageURL:  input.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	return category, nil
}

// GetCategory retrieves a category by its ID.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// ListCategories returns all active categories ordered for display.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory applies partial updates to an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input *domain.UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("category name must not be empty")
		}
		category.Name = *input.Name
		category.Slug = slug.Generate(*input.Name)
	}

	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}

	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if input.ImageURL != nil {
		category.ImageURL = input.ImageURL
	}

	category.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.logger.InfoContext(ctx, "category updated",
		slog.String("category_id", category.ID),
	)

	return category, nil
}

// DeleteCategory removes a category by its ID.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.logger.InfoContext(ctx, "category deleted",
		slog.String("category_id", id),
	)

	return nil
}
