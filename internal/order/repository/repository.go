package repository

import (
	"context"

	"github.com/QwabenaBoateng/Angiesplug/internal/order/domain"
)

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	UserID  *string
	Status  *string
	Page    int
	PerPage int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order with its items.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns orders matching the filter along with the total count.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	// ListByUser returns a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// UpdateStatus changes the status of an order.
	UpdateStatus(ctx context.Context, id, status string) error
}
