package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/QwabenaBoateng/Angiesplug/internal/media/domain"
	"github.com/QwabenaBoateng/Angiesplug/pkg/database"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
)

const mediaColumns = `id, owner_id, owner_type, file_name, original_name, content_type, size, url, alt_text, sort_order, created_at, updated_at`

// MediaRepository implements repository.MediaRepository using PostgreSQL.
type MediaRepository struct {
	pool database.DBTX
}

// NewMediaRepository creates a new PostgreSQL-backed media repository.
func NewMediaRepository(pool database.DBTX) *MediaRepository {
	return &MediaRepository{pool: pool}
}

// Create inserts a new media record.
func (r *MediaRepository) Create(ctx context.Context, m *domain.MediaFile) error {
	query := `
		INSERT INTO media_files (` + mediaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.OwnerID, m.OwnerType, m.FileName, m.OriginalName, m.ContentType,
		m.Size, m.URL, m.AltText, m.SortOrder, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert media: %w", err)
	}

	return nil
}

// GetByID retrieves a media record by its ID.
func (r *MediaRepository) GetByID(ctx context.Context, id string) (*domain.MediaFile, error) {
	query := `SELECT ` + mediaColumns + ` FROM media_files WHERE id = $1`

	var m domain.MediaFile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.OwnerID, &m.OwnerType, &m.FileName, &m.OriginalName, &m.ContentType,
		&m.Size, &m.URL, &m.AltText, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("media", id)
		}
		return nil, fmt.Errorf("get media: %w", err)
	}

	return &m, nil
}

// ListByOwner returns media for an owner with the total count.
func (r *MediaRepository) ListByOwner(ctx context.Context, ownerID, ownerType string, offset, limit int) ([]domain.MediaFile, int, error) {
	query := `
		SELECT ` + mediaColumns + `, count(*) OVER() AS total_count
		FROM media_files
		WHERE owner_id = $1 AND owner_type = $2
		ORDER BY sort_order, created_at
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, ownerID, ownerType, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var (
		files      []domain.MediaFile
		totalCount int
	)

	for rows.Next() {
		var m domain.MediaFile
		if err := rows.Scan(
			&m.ID, &m.OwnerID, &m.OwnerType, &m.FileName, &m.OriginalName, &m.ContentType,
			&m.Size, &m.URL, &m.AltText, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan media row: %w", err)
		}
		files = append(files, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate media rows: %w", err)
	}

	return files, totalCount, nil
}

// Update modifies mutable metadata on a media record.
func (r *MediaRepository) Update(ctx context.Context, m *domain.MediaFile) error {
	query := `
		UPDATE media_files
		SET alt_text = $2, sort_order = $3, updated_at = $4
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, m.ID, m.AltText, m.SortOrder, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("media", m.ID)
	}

	return nil
}

// Delete removes a media record.
func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM media_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("media", id)
	}
	return nil
}
