package domain

import "time"

// Category represents a product category such as "Ladies Wear" or "Accessories".
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name      string  `json:"name" validate:"required,min=1,max=255"`
	SortOrder int     `json:"sort_order" validate:"gte=0"`
	IsActive  *bool   `json:"is_active"`
	ImageURL  *string `json:"image_url" validate:"omitempty,url"`
}

// UpdateCategoryInput holds the parameters for updating a category.
type UpdateCategoryInput struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
	IsActive  *bool   `json:"is_active"`
	ImageURL  *string `json:"image_url"`
}
