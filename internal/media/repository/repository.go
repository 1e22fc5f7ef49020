package repository

import (
	"context"

	"github.com/QwabenaBoateng/Angiesplug/internal/media/domain"
)

// MediaRepository defines the interface for media metadata persistence.
type MediaRepository interface {
	// Create inserts a new media record.
	Create(ctx context.Context, media *domain.MediaFile) error

	// GetByID retrieves a media record by its identifier.
	GetByID(ctx context.Context, id string) (*domain.MediaFile, error)

	// ListByOwner returns media for an owner with the total count.
	ListByOwner(ctx context.Context, ownerID, ownerType string, offset, limit int) ([]domain.MediaFile, int, error)

	// Update modifies mutable metadata on a media record.
	Update(ctx context.Context, media *domain.MediaFile) error

	// Delete removes a media record.
	Delete(ctx context.Context, id string) error
}
