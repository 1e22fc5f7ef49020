package domain

import "time"

// Brand represents a product brand.
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBrandInput holds the parameters for creating a brand.
type CreateBrandInput struct {
	Name    string  `json:"name" validate:"required,min=1,max=255"`
	LogoURL *string `json:"logo_url" validate:"omitempty,url"`
}

// UpdateBrandInput holds the parameters for updating a brand.
type UpdateBrandInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	LogoURL *string `json:"logo_url"`
}
