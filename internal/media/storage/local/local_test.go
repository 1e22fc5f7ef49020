package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut_WritesFileAndBuildsURL(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, "http://localhost:8080")
	require.NoError(t, err)

	obj, err := store.Put(context.Background(), "product/p-1/img-1", "image/jpeg", 9, strings.NewReader("jpeg data"))
	require.NoError(t, err)
	assert.Equal(t, "product/p-1/img-1", obj.Key)
	assert.Equal(t, "http://localhost:8080/media/product/p-1/img-1", obj.URL)

	data, err := os.ReadFile(filepath.Join(root, "product", "p-1", "img-1"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg data", string(data))
}

func TestPut_RejectsTraversalKey(t *testing.T) {
	store, err := New(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../escape", "image/jpeg", 4, strings.NewReader("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid media key")
}

func TestDelete_RemovesFile(t *testing.T) {
	root := t.TempDir()
	store, err := New(root, "http://localhost:8080")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "banner/b-1/art", "image/png", 3, strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "banner/b-1/art"))
	_, err = os.Stat(filepath.Join(root, "banner", "b-1", "art"))
	assert.True(t, os.IsNotExist(err))
}

func TestDelete_MissingKey(t *testing.T) {
	store, err := New(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	err = store.Delete(context.Background(), "product/none/gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestURL_ExistingAndMissing(t *testing.T) {
	store, err := New(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "product/p-2/img", "image/webp", 4, strings.NewReader("webp"))
	require.NoError(t, err)

	url, err := store.URL(context.Background(), "product/p-2/img")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/product/p-2/img", url)

	_, err = store.URL(context.Background(), "product/p-2/other")
	assert.Error(t, err)
}
