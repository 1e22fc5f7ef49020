package domain

// Shipping and tax rules, in minor currency units (cents).
const (
	// FreeShippingThreshold is the subtotal above which shipping is free.
	// The comparison is strictly greater than.
	FreeShippingThreshold int64 = 5000

	// FlatShippingFee applies to any order at or below the threshold.
	FlatShippingFee int64 = 1000

	// TaxRatePercent is the flat tax rate applied to the subtotal.
	TaxRatePercent int64 = 8
)

// CartLine is one line in a shopping cart. Lines are keyed by ProductID:
// adding the same product again increases the quantity of the existing line
// regardless of the size or color chosen.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Category  string `json:"category,omitempty"`
}

// LineTotal returns the extended price for the line.
func (l CartLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Snapshot is a cart with derived totals, computed at read time.
type Snapshot struct {
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  int64      `json:"subtotal"`
	Shipping  int64      `json:"shipping"`
	Tax       int64      `json:"tax"`
	Total     int64      `json:"total"`
}

// BuildSnapshot computes totals for the given cart lines.
func BuildSnapshot(items []CartLine) Snapshot {
	snap := Snapshot{Items: items}

	for _, line := range items {
		snap.ItemCount += line.Quantity
		snap.Subtotal += line.LineTotal()
	}

	if snap.Subtotal > 0 && snap.Subtotal <= FreeShippingThreshold {
		snap.Shipping = FlatShippingFee
	}

	snap.Tax = snap.Subtotal * TaxRatePercent / 100
	snap.Total = snap.Subtotal + snap.Shipping + snap.Tax

	return snap
}
