package domain

import "time"

// Banner position constants.
const (
	BannerPositionHero = "hero"
	BannerPositionMid  = "mid"
	BannerPositionFoot = "foot"
)

// Banner represents a promotional banner in the storefront.
type Banner struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subtitle  *string    `json:"subtitle,omitempty"`
	ImageURL  string     `json:"image_url"`
	VideoURL  *string    `json:"video_url,omitempty"`
	LinkURL   string     `json:"link_url"`
	Position  string     `json:"position"`
	SortOrder int        `json:"sort_order"`
	IsActive  bool       `json:"is_active"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateBannerInput holds the parameters for creating a banner.
type CreateBannerInput struct {
	Title     string     `json:"title" validate:"required,min=1,max=255"`
	Subtitle  *string    `json:"subtitle"`
	ImageURL  string     `json:"image_url" validate:"required,url"`
	VideoURL  *string    `json:"video_url" validate:"omitempty,url"`
	LinkURL   string     `json:"link_url" validate:"omitempty,url"`
	Position  string     `json:"position" validate:"required,oneof=hero mid foot"`
	SortOrder int        `json:"sort_order" validate:"gte=0"`
	IsActive  bool       `json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// UpdateBannerInput holds the parameters for updating a banner.
type UpdateBannerInput struct {
	Title     *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Subtitle  *string    `json:"subtitle"`
	ImageURL  *string    `json:"image_url" validate:"omitempty,url"`
	VideoURL  *string    `json:"video_url"`
	LinkURL   *string    `json:"link_url"`
	Position  *string    `json:"position" validate:"omitempty,oneof=hero mid foot"`
	SortOrder *int       `json:"sort_order" validate:"omitempty,gte=0"`
	IsActive  *bool      `json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// ValidBannerPositions returns the set of valid banner positions.
func ValidBannerPositions() []string {
	return []string{BannerPositionHero, BannerPositionMid, BannerPositionFoot}
}

// IsValidBannerPosition checks whether the given position is valid.
func IsValidBannerPosition(position string) bool {
	for _, p := range ValidBannerPositions() {
		if p == position {
			return true
		}
	}
	return false
}
