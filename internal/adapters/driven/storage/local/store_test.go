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

func TestUpload_WritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), []byte("artifact"), "scene-1.png", "image/png")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.True(t, strings.HasSuffix(url, "scene-1.png"))

	data, err := os.ReadFile(filepath.Join(dir, "scene-1.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("artifact"), data)
}

func TestUpload_FlattensTraversalKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), []byte("x"), "../../etc/escape.png", "image/png")

	require.NoError(t, err)
	// The artifact lands inside the store directory regardless of the key.
	_, statErr := os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, statErr)
}

func TestUpload_EmptyKeyRejected(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), []byte("x"), "", "image/png")

	assert.Error(t, err)
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")

	store, err := NewStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
