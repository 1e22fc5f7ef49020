package domain

import "time"

// Order status constants.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCanceled   = "canceled"
	OrderStatusRefunded   = "refunded"
)

// Order represents a placed order.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	SessionID       string      `json:"session_id,omitempty"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	SubtotalAmount  int64       `json:"subtotal_amount"`
	ShippingAmount  int64       `json:"shipping_amount"`
	TaxAmount       int64       `json:"tax_amount"`
	TotalAmount     int64       `json:"total_amount"`
	Currency        string      `json:"currency"`
	ShippingAddress *Address    `json:"shipping_address,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is one purchased line, copied from the cart at checkout time so
// later catalog edits do not rewrite order history.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Address is where the order ships.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
}

// ValidStatuses returns all valid order statuses.
func ValidStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCanceled,
		OrderStatusRefunded,
	}
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// AllowedTransitions defines which status transitions are valid.
func AllowedTransitions() map[string][]string {
	return map[string][]string{
		OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCanceled},
		OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCanceled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusCanceled},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  {OrderStatusRefunded},
		OrderStatusCanceled:   {},
		OrderStatusRefunded:   {},
	}
}

// CanTransitionTo checks if the order can transition to the target status.
func (o *Order) CanTransitionTo(target string) bool {
	allowed, ok := AllowedTransitions()[o.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}
