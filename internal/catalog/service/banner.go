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
)

// BannerService implements the business logic for promotional banners.
type BannerService struct {
	repo   repository.BannerRepository
	logger *slog.Logger
}

// NewBannerService creates a new banner service.
func NewBannerService(repo repository.BannerRepository, logger *slog.Logger) *BannerService {
	return &BannerService{repo: repo, logger: logger}
}

// CreateBanner creates a new banner.
func (s *BannerService) CreateBanner(ctx context.Context, input *domain.CreateBannerInput) (*domain.Banner, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("banner title is required")
	}
	if input.ImageURL == "" {
		return nil, apperrors.InvalidInput("banner image URL is required")
	}
	if !domain.IsValidBannerPosition(input.Position) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid banner position %q", input.Position))
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, apperrors.InvalidInput("banner end time must not precede start time")
	}

	now := time.Now().UTC()
	banner := &domain.Banner{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Subtitle:  input.Subtitle,
		ImageURL:  input.ImageURL,
		VideoURL:  input.VideoURL,
		LinkURL:   input.LinkURL,
		Position:  input.Position,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
		StartsAt:  input.StartsAt,
		EndsAt:    input.EndsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}

	s.logger.InfoContext(ctx, "banner created",
		slog.String("banner_id", banner.ID),
		slog.String("position", banner.Position),
	)

	return banner, nil
}

// GetBanner retrieves a banner by its ID.
func (s *BannerService) GetBanner(ctx context.Context, id string) (*domain.Banner, error) {
	banner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get banner: %w", err)
	}
	return banner, nil
}

// ListActiveBanners returns banners to display for a position. An empty
// position returns active banners for every position.
func (s *BannerService) ListActiveBanners(ctx context.Context, position string) ([]domain.Banner, error) {
	if position != "" && !domain.IsValidBannerPosition(position) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid banner position %q", position))
	}

	banners, err := s.repo.ListActive(ctx, position)
	if err != nil {
		return nil, fmt.Errorf("list active banners: %w", err)
	}
	return banners, nil
}

// ListAllBanners returns every banner, for the admin console.
func (s *BannerService) ListAllBanners(ctx context.Context) ([]domain.Banner, error) {
	banners, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return banners, nil
}

// UpdateBanner applies partial updates to an existing banner.
func (s *BannerService) UpdateBanner(ctx context.Context, id string, input *domain.UpdateBannerInput) (*domain.Banner, error) {
	banner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get banner for update: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.InvalidInput("banner title must not be empty")
		}
		banner.Title = *input.Title
	}

	if input.Subtitle != nil {
		banner.Subtitle = input.Subtitle
	}

	if input.ImageURL != nil {
		banner.ImageURL = *input.ImageURL
	}

	if input.VideoURL != nil {
		banner.VideoURL = input.VideoURL
	}

	if input.LinkURL != nil {
		banner.LinkURL = *input.LinkURL
	}

	if input.Position != nil {
		if !domain.IsValidBannerPosition(*input.Position) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid banner position %q", *input.Position))
		}
		banner.Position = *input.Position
	}

	if input.SortOrder != nil {
		banner.SortOrder = *input.SortOrder
	}

	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	if input.StartsAt != nil {
		banner.StartsAt = input.StartsAt
	}

	if input.EndsAt != nil {
		banner.EndsAt = input.EndsAt
	}

	if banner.StartsAt != nil && banner.EndsAt != nil && banner.EndsAt.Before(*banner.StartsAt) {
		return nil, apperrors.InvalidInput("banner end time must not precede start time")
	}

	banner.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, fmt.Errorf("update banner: %w", err)
	}

	s.logger.InfoContext(ctx, "banner updated",
		slog.String("banner_id", banner.ID),
	)

	return banner, nil
}

// DeleteBanner removes a banner by its ID.
func (s *BannerService) DeleteBanner(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}

	s.logger.InfoContext(ctx, "banner deleted",
		slog.String("banner_id", id),
	)

	return nil
}
