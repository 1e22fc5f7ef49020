package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/QwabenaBoateng/Angiesplug/internal/media/storage"
)

// Store implements storage.Store on the local filesystem. Files are written
// under root and served by the HTTP layer from baseURL/media.
type Store struct {
	root    string
	baseURL string
}

// New creates a local filesystem store rooted at the given directory.
func New(root, baseURL string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &Store{root: root, baseURL: baseURL}, nil
}

// Put writes the file to disk and returns the stored object.
func (s *Store) Put(_ context.Context, key, _ string, _ int64, data io.Reader) (*storage.Object, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write media file: %w", err)
	}

	return &storage.Object{
		Key: key,
		URL: fmt.Sprintf("%s/media/%s", s.baseURL, key),
	}, nil
}

// Delete removes a file from disk.
func (s *Store) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", key)
		}
		return fmt.Errorf("delete media file: %w", err)
	}

	return nil
}

// URL returns the public URL for the given key.
func (s *Store) URL(_ context.Context, key string) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file not found: %s", key)
	}

	return fmt.Sprintf("%s/media/%s", s.baseURL, key), nil
}

// resolve maps a key to a path under root, rejecting traversal outside it.
func (s *Store) resolve(key string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid media key: %s", key)
	}
	return path, nil
}
