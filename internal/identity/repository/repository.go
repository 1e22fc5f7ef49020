package repository

import (
	"context"

	"github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
)

// ProfileRepository defines the interface for user profile persistence.
type ProfileRepository interface {
	// Create inserts a new profile.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByID retrieves a profile by user ID, including its role. A profile
	// without a role assignment comes back with the default role.
	GetByID(ctx context.Context, id string) (*domain.Profile, error)

	// GetByEmail retrieves a profile by email address.
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)

	// List returns profiles with the total count, for the admin console.
	List(ctx context.Context, page, perPage int) ([]domain.Profile, int, error)

	// UpdateRole changes the role assignment for a user.
	UpdateRole(ctx context.Context, userID, role string) error
}
