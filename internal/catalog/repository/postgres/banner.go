package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	"github.com/QwabenaBoateng/Angiesplug/pkg/database"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
)

const bannerColumns = `id, title, subtitle, image_url, video_url, link_url, position, sort_order, is_active, starts_at, ends_at, created_at, updated_at`

// BannerRepository implements repository.BannerRepository using PostgreSQL.
type BannerRepository struct {
	pool database.DBTX
}

// NewBannerRepository creates a new PostgreSQL-backed banner repository.
func NewBannerRepository(pool database.DBTX) *BannerRepository {
	return &BannerRepository{pool: pool}
}

// Create inserts a new banner.
func (r *BannerRepository) Create(ctx context.Context, b *domain.Banner) error {
	query := `
		INSERT INTO banners (` + bannerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, b.Subtitle, b.ImageURL, b.VideoURL, b.LinkURL, b.Position,
		b.SortOrder, b.IsActive, b.StartsAt, b.EndsAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert banner: %w", err)
	}

	return nil
}

// GetByID retrieves a banner by its ID.
func (r *BannerRepository) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`

	var b domain.Banner
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.VideoURL, &b.LinkURL, &b.Position,
		&b.SortOrder, &b.IsActive, &b.StartsAt, &b.EndsAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("banner", id)
		}
		return nil, fmt.Errorf("get banner: %w", err)
	}

	return &b, nil
}

// ListActive returns active banners for a position whose schedule window, if
// set, includes the current time. An empty position returns all positions.
func (r *BannerRepository) ListActive(ctx context.Context, position string) ([]domain.Banner, error) {
	query := `
		SELECT ` + bannerColumns + `
		FROM banners
		WHERE is_active
		  AND (starts_at IS NULL OR starts_at <= now())
		  AND (ends_at IS NULL OR ends_at >= now())
		  AND ($1 = '' OR position = $1)
		ORDER BY sort_order, created_at DESC`

	return r.queryBanners(ctx, query, position)
}

// ListAll returns every banner, for the admin console.
func (r *BannerRepository) ListAll(ctx context.Context) ([]domain.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners ORDER BY position, sort_order`
	return r.queryBanners(ctx, query)
}

// Update modifies an existing banner.
func (r *BannerRepository) Update(ctx context.Context, b *domain.Banner) error {
	query := `
		UPDATE banners
		SET title = $2, subtitle = $3, image_url = $4, video_url = $5, link_url = $6,
		    position = $7, sort_order = $8, is_active = $9, starts_at = $10,
		    ends_at = $11, updated_at = $12
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, b.Subtitle, b.ImageURL, b.VideoURL, b.LinkURL, b.Position,
		b.SortOrder, b.IsActive, b.StartsAt, b.EndsAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("banner", b.ID)
	}

	return nil
}

// Delete removes a banner by ID.
func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("banner", id)
	}
	return nil
}

func (r *BannerRepository) queryBanners(ctx context.Context, query string, args ...any) ([]domain.Banner, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	var banners []domain.Banner
	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.VideoURL, &b.LinkURL, &b.Position,
			&b.SortOrder, &b.IsActive, &b.StartsAt, &b.EndsAt, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan banner row: %w", err)
		}
		banners = append(banners, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate banner rows: %w", err)
	}

	return banners, nil
}
