package domain

import (
	"strings"
	"time"
)

// Allowed content types for media uploads. Banners accept short videos in
// addition to images.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"video/mp4":  true,
	"video/webm": true,
}

// Size limits in bytes.
const (
	MaxImageSize int64 = 10 * 1024 * 1024
	MaxVideoSize int64 = 100 * 1024 * 1024
)

// Owner type constants.
const (
	OwnerTypeProduct  = "product"
	OwnerTypeCategory = "category"
	OwnerTypeBanner   = "banner"
	OwnerTypeBrand    = "brand"
)

// MediaFile represents an uploaded media file.
type MediaFile struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	OwnerType    string    `json:"owner_type"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	AltText      string    `json:"alt_text"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAllowedContentType checks whether the given content type is allowed.
func IsAllowedContentType(contentType string) bool {
	return AllowedContentTypes[contentType]
}

// IsVideo reports whether the content type is a video format.
func IsVideo(contentType string) bool {
	return strings.HasPrefix(contentType, "video/")
}

// MaxSizeFor returns the size limit for a content type.
func MaxSizeFor(contentType string) int64 {
	if IsVideo(contentType) {
		return MaxVideoSize
	}
	return MaxImageSize
}

// ValidOwnerTypes returns the set of valid owner types.
func ValidOwnerTypes() []string {
	return []string{OwnerTypeProduct, OwnerTypeCategory, OwnerTypeBanner, OwnerTypeBrand}
}

// IsValidOwnerType checks whether the given owner type is valid.
func IsValidOwnerType(ownerType string) bool {
	for _, t := range ValidOwnerTypes() {
		if t == ownerType {
			return true
		}
	}
	return false
}
