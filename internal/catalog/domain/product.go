package domain

import "time"

// Product represents one purchasable article in the catalog. Category carries
// the denormalized category label the storefront filters on; CategoryID and
// BrandID reference the taxonomy rows.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CategoryID  *string   `json:"category_id,omitempty"`
	BrandID     *string   `json:"brand_id,omitempty"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Rating      float64   `json:"rating"`
	Sizes       []string  `json:"sizes,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=500"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
	BrandID     *string  `json:"brand_id" validate:"omitempty,uuid"`
	Price       int64    `json:"price" validate:"required,gte=0"`
	Currency    string   `json:"currency"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductInput holds the parameters for a partial product update.
type UpdateProductInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=500"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
	BrandID     *string  `json:"brand_id" validate:"omitempty,uuid"`
	Price       *int64   `json:"price" validate:"omitempty,gte=0"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}
