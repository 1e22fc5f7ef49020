package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/QwabenaBoateng/Angiesplug/internal/media/storage"
)

// Store implements storage.Store using an in-memory map. It keeps metadata
// only, for tests; file bytes are discarded.
type Store struct {
	mu      sync.RWMutex
	urls    map[string]string
	baseURL string
}

// New creates a new in-memory store.
func New(baseURL string) *Store {
	return &Store{
		urls:    make(map[string]string),
		baseURL: baseURL,
	}
}

// Put records the key and returns the generated URL.
func (s *Store) Put(_ context.Context, key, _ string, _ int64, _ io.Reader) (*storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url := fmt.Sprintf("%s/media/%s", s.baseURL, key)
	s.urls[key] = url

	return &storage.Object{Key: key, URL: url}, nil
}

// Delete removes the key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.urls[key]; !exists {
		return fmt.Errorf("file not found: %s", key)
	}

	delete(s.urls, key)
	return nil
}

// URL returns the URL for the given key.
func (s *Store) URL(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	url, exists := s.urls[key]
	if !exists {
		return "", fmt.Errorf("file not found: %s", key)
	}

	return url, nil
}
