package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "scenekit-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}
	return store, cleanup
}

func testAsset(id string) domain.BrandAsset {
	return domain.BrandAsset{
		ID:         id,
		URL:        "https://assets.test/" + id + ".png",
		Name:       "Asset " + id,
		AssetType:  "product-hero",
		Category:   domain.CategoryProduct,
		Keywords:   []string{"hero", "bottle"},
		Priority:   2,
		MimeType:   "image/png",
		EntityName: "Herbalix",
	}
}

func TestNewStore_CreatesDatabaseFile(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
	assert.Equal(t, "assets.db", filepath.Base(store.Path()))
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "scenekit-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.Save(context.Background(), testAsset("a1")))
	require.NoError(t, first.Close())

	// Reopening must not rerun applied migrations or lose data.
	second, err := NewStore(tempDir)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "Asset a1", got.Name)
}

func TestSaveAndGet_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	asset := testAsset("a1")
	asset.IsDefault = true
	require.NoError(t, store.Save(ctx, asset))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, asset.Name, got.Name)
	assert.Equal(t, asset.Keywords, got.Keywords)
	assert.Equal(t, asset.Category, got.Category)
	assert.True(t, got.IsDefault)
	assert.Equal(t, 2, got.Priority)
}

func TestSave_UpsertsExisting(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testAsset("a1")))

	updated := testAsset("a1")
	updated.Name = "Renamed"
	updated.Priority = 7
	require.NoError(t, store.Save(ctx, updated))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 7, got.Priority)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSave_EmptyIDRejected(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.Save(context.Background(), domain.BrandAsset{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RemovesAsset(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testAsset("a1")))
	require.NoError(t, store.Delete(ctx, "a1"))

	_, err := store.Get(ctx, "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueryAssets_InclusiveOR(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	typed := testAsset("typed")
	untypedKeyword := domain.BrandAsset{
		ID:       "kw",
		Name:     "Untyped shot",
		Category: domain.CategoryLocation,
		Keywords: []string{"bottle"},
	}
	unrelated := domain.BrandAsset{
		ID:       "other",
		Name:     "Logo",
		Category: domain.CategoryLogo,
	}
	require.NoError(t, store.Save(ctx, typed))
	require.NoError(t, store.Save(ctx, untypedKeyword))
	require.NoError(t, store.Save(ctx, unrelated))

	got, err := store.QueryAssets(ctx, driven.AssetFilter{
		Types:       []string{"product-hero"},
		Category:    domain.CategoryProduct,
		KeywordsAny: []string{"bottle"},
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "typed", got[0].ID)
	assert.Equal(t, "kw", got[1].ID)
}

func TestQueryAssets_KeywordIsExactMember(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	partial := domain.BrandAsset{
		ID:       "partial",
		Name:     "Desk scene",
		Category: domain.CategoryLocation,
		Keywords: []string{"standing desk"},
	}
	exact := domain.BrandAsset{
		ID:       "exact",
		Name:     "Desk shot",
		Category: domain.CategoryLocation,
		Keywords: []string{"desk"},
	}
	require.NoError(t, store.Save(ctx, partial))
	require.NoError(t, store.Save(ctx, exact))

	got, err := store.QueryAssets(ctx, driven.AssetFilter{KeywordsAny: []string{"desk"}})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "exact", got[0].ID)
}

func TestQueryAssets_EmptyFilterMatchesAll(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testAsset("a1")))
	require.NoError(t, store.Save(ctx, testAsset("a2")))

	got, err := store.QueryAssets(ctx, driven.AssetFilter{})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestQueryAssets_ActiveOnlyExcludesDeactivated(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testAsset("a1")))
	require.NoError(t, store.Save(ctx, testAsset("a2")))
	require.NoError(t, store.Deactivate(ctx, "a1"))

	got, err := store.QueryAssets(ctx, driven.AssetFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a2", got[0].ID)

	// Without the flag the deactivated asset is still visible.
	all, err := store.QueryAssets(ctx, driven.AssetFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestQueryAssets_PreservesInsertionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Save(ctx, testAsset(id)))
	}

	got, err := store.QueryAssets(ctx, driven.AssetFilter{Category: domain.CategoryProduct})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "b", got[2].ID)
}
