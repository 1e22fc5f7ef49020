package storage

import (
	"context"
	"io"
)

// Object is a stored media file: the key it lives under and the public URL
// it is served from.
type Object struct {
	Key string
	URL string
}

// Store persists uploaded media bytes for product imagery and banner art.
// Keys are slash-separated owner_type/owner_id/file paths chosen by the
// caller and unique per upload.
type Store interface {
	// Put writes the file under key and returns the stored object.
	Put(ctx context.Context, key, contentType string, size int64, data io.Reader) (*Object, error)

	// Delete removes the object under key. A missing key is an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for the object under key.
	URL(ctx context.Context, key string) (string, error)
}
