package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	identitydomain "github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/order/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/order/repository"
	sessionservice "github.com/QwabenaBoateng/Angiesplug/internal/session/service"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
)

// OrderEventPublisher publishes order lifecycle events.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous string) error
}

// CheckoutInput holds the parameters for placing an order from a session cart.
type CheckoutInput struct {
	ShippingAddress domain.Address `json:"shipping_address" validate:"required"`
	Currency        string         `json:"currency"`
}

// OrderService implements checkout and order management.
type OrderService struct {
	repo     repository.OrderRepository
	producer OrderEventPublisher
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, producer OrderEventPublisher, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Checkout turns the session's cart into a pending order, then clears and
// commits the cart so the empty state is durable before the order is
// acknowledged. Totals are computed from the cart snapshot, never from
// client-supplied figures.
func (s *OrderService) Checkout(ctx context.Context, store *sessionservice.Store, input *CheckoutInput) (*domain.Order, error) {
	user := store.User()
	if user == nil {
		return nil, apperrors.Unauthorized("sign in to check out")
	}

	snapshot := store.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	items := make([]domain.OrderItem, len(snapshot.Items))
	for i, line := range snapshot.Items {
		items[i] = domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			ImageURL:  line.ImageURL,
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		SessionID:       store.SessionID(),
		Status:          domain.OrderStatusPending,
		Items:           items,
		SubtotalAmount:  snapshot.Subtotal,
		ShippingAmount:  snapshot.Shipping,
		TaxAmount:       snapshot.Tax,
		TotalAmount:     snapshot.Total,
		Currency:        currency,
		ShippingAddress: &input.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	store.ClearCart()
	if err := store.Commit(ctx); err != nil {
		// The order exists; a failed cart commit must not undo the sale.
		s.logger.ErrorContext(ctx, "failed to commit cleared cart after checkout",
			slog.String("order_id", order.ID),
			slog.String("session_id", store.SessionID()),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", user.ID),
		slog.Int64("total_amount", order.TotalAmount),
	)

	return order, nil
}

// GetOrder retrieves an order. Users may only read their own orders; holders
// of the manage_orders capability may read any.
func (s *OrderService) GetOrder(ctx context.Context, actor *identitydomain.SessionUser, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if actor == nil || (order.UserID != actor.ID && !identitydomain.HasCapability(actor, identitydomain.CapabilityManageOrders)) {
		return nil, apperrors.Forbidden("not your order")
	}

	return order, nil
}

// ListMyOrders returns the signed-in user's orders, newest first.
func (s *OrderService) ListMyOrders(ctx context.Context, actor *identitydomain.SessionUser) ([]domain.Order, error) {
	if actor == nil {
		return nil, apperrors.Unauthorized("sign in to view orders")
	}

	orders, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return orders, nil
}

// ListOrders returns orders for the admin console. The caller must hold the
// manage_orders capability.
func (s *OrderService) ListOrders(ctx context.Context, actor *identitydomain.SessionUser, filter repository.OrderFilter) ([]domain.Order, int, error) {
	if !identitydomain.HasCapability(actor, identitydomain.CapabilityManageOrders) {
		return nil, 0, apperrors.Forbidden("missing manage_orders capability")
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// UpdateStatus moves an order through its lifecycle. Only transitions allowed
// by the status machine are accepted, and the caller must hold the
// manage_orders capability.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *identitydomain.SessionUser, id, status string) (*domain.Order, error) {
	if !identitydomain.HasCapability(actor, identitydomain.CapabilityManageOrders) {
		return nil, apperrors.Forbidden("missing manage_orders capability")
	}
	if !domain.IsValidStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid order status %q", status))
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for status update: %w", err)
	}

	if !order.CanTransitionTo(status) {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = time.Now().UTC()

	if err := s.producer.PublishOrderStatusChanged(ctx, order, previous); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", order.ID),
		slog.String("from", previous),
		slog.String("to", status),
	)

	return order, nil
}
