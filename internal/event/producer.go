package event

import (
	"context"
	"fmt"
	"log/slog"

	catalogdomain "github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	mediadomain "github.com/QwabenaBoateng/Angiesplug/internal/media/domain"
	orderdomain "github.com/QwabenaBoateng/Angiesplug/internal/order/domain"
	sessiondomain "github.com/QwabenaBoateng/Angiesplug/internal/session/domain"
	pkgkafka "github.com/QwabenaBoateng/Angiesplug/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicProductCreated     = "angiesplug.product.created"
	TopicProductUpdated     = "angiesplug.product.updated"
	TopicProductDeleted     = "angiesplug.product.deleted"
	TopicCartUpdated        = "angiesplug.cart.updated"
	TopicCartCleared        = "angiesplug.cart.cleared"
	TopicOrderCreated       = "angiesplug.order.created"
	TopicOrderStatusChanged = "angiesplug.order.status_changed"
	TopicMediaUploaded      = "angiesplug.media.uploaded"
	TopicMediaDeleted       = "angiesplug.media.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeCart    = "cart"
	AggregateTypeOrder   = "order"
	AggregateTypeMedia   = "media"
)

// Source identifier for events originating from the storefront API.
const SourceStorefront = "angiesplug-api"

// ProductEventData is the payload for product.created and product.updated events.
type ProductEventData struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Category string  `json:"category"`
	Price    int64   `json:"price"`
	Currency string  `json:"currency"`
	IsActive bool    `json:"is_active"`
	BrandID  *string `json:"brand_id,omitempty"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string                   `json:"session_id"`
	Items     []sessiondomain.CartLine `json:"items"`
	ItemCount int                      `json:"item_count"`
	Subtotal  int64                    `json:"subtotal"`
	Shipping  int64                    `json:"shipping"`
	Tax       int64                    `json:"tax"`
	Total     int64                    `json:"total"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	SessionID   string `json:"session_id"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	ID             string `json:"id"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
}

// MediaUploadedData is the payload for a media.uploaded event.
type MediaUploadedData struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	OwnerType   string `json:"owner_type"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

// MediaDeletedData is the payload for a media.deleted event.
type MediaDeletedData struct {
	ID string `json:"id"`
}

// Producer publishes storefront domain events to Kafka. It satisfies the
// publisher interfaces declared by the catalog, session, order, and media
// services.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *catalogdomain.Product) error {
	if err := p.publish(ctx, TopicProductCreated, product.ID, AggregateTypeProduct, productEventData(product)); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return nil
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *catalogdomain.Product) error {
	if err := p.publish(ctx, TopicProductUpdated, product.ID, AggregateTypeProduct, productEventData(product)); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published product.updated event",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string) error {
	if err := p.publish(ctx, TopicProductDeleted, id, AggregateTypeProduct, ProductDeletedData{ID: id}); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published product.deleted event",
		slog.String("product_id", id),
	)

	return nil
}

// PublishCartUpdated publishes a cart.updated event with the committed snapshot.
func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID string, snapshot sessiondomain.Snapshot) error {
	data := CartUpdatedData{
		SessionID: sessionID,
		Items:     snapshot.Items,
		ItemCount: snapshot.ItemCount,
		Subtotal:  snapshot.Subtotal,
		Shipping:  snapshot.Shipping,
		Tax:       snapshot.Tax,
		Total:     snapshot.Total,
	}

	if err := p.publish(ctx, TopicCartUpdated, sessionID, AggregateTypeCart, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", sessionID),
		slog.Int("item_count", snapshot.ItemCount),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	if err := p.publish(ctx, TopicCartCleared, sessionID, AggregateTypeCart, CartClearedData{SessionID: sessionID}); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *orderdomain.Order) error {
	data := OrderCreatedData{
		ID:          order.ID,
		UserID:      order.UserID,
		SessionID:   order.SessionID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
	}

	if err := p.publish(ctx, TopicOrderCreated, order.ID, AggregateTypeOrder, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
		slog.Int64("total_amount", order.TotalAmount),
	)

	return nil
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, order *orderdomain.Order, previous string) error {
	data := OrderStatusChangedData{
		ID:             order.ID,
		PreviousStatus: previous,
		Status:         order.Status,
	}

	if err := p.publish(ctx, TopicOrderStatusChanged, order.ID, AggregateTypeOrder, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published order.status_changed event",
		slog.String("order_id", order.ID),
		slog.String("previous_status", previous),
		slog.String("status", order.Status),
	)

	return nil
}

// PublishMediaUploaded publishes a media.uploaded event.
func (p *Producer) PublishMediaUploaded(ctx context.Context, media *mediadomain.MediaFile) error {
	data := MediaUploadedData{
		ID:          media.ID,
		OwnerID:     media.OwnerID,
		OwnerType:   media.OwnerType,
		ContentType: media.ContentType,
		Size:        media.Size,
		URL:         media.URL,
	}

	if err := p.publish(ctx, TopicMediaUploaded, media.ID, AggregateTypeMedia, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published media.uploaded event",
		slog.String("media_id", media.ID),
	)

	return nil
}

// PublishMediaDeleted publishes a media.deleted event.
func (p *Producer) PublishMediaDeleted(ctx context.Context, mediaID string) error {
	if err := p.publish(ctx, TopicMediaDeleted, mediaID, AggregateTypeMedia, MediaDeletedData{ID: mediaID}); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published media.deleted event",
		slog.String("media_id", mediaID),
	)

	return nil
}

func productEventData(product *catalogdomain.Product) ProductEventData {
	return ProductEventData{
		ID:       product.ID,
		Name:     product.Name,
		Slug:     product.Slug,
		Category: product.Category,
		Price:    product.Price,
		Currency: product.Currency,
		IsActive: product.IsActive,
		BrandID:  product.BrandID,
	}
}
