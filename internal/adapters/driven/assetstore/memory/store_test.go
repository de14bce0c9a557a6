package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

func TestQueryAssets_InclusiveOR(t *testing.T) {
	store := NewStore()
	store.Add(
		domain.BrandAsset{ID: "a", AssetType: "logo-primary-color", Category: domain.CategoryLogo},
		domain.BrandAsset{ID: "b", Category: domain.CategoryProduct, Keywords: []string{"bottle"}},
		domain.BrandAsset{ID: "c", Category: domain.CategoryLocation},
	)

	// Type leg matches "a", keyword leg matches "b": the untyped
	// product arrives despite not matching the type filter.
	results, err := store.QueryAssets(context.Background(), driven.AssetFilter{
		Types:       []string{"logo-primary-color"},
		KeywordsAny: []string{"bottle"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "b", results[1].ID)
}

func TestQueryAssets_EmptyFilterMatchesAll(t *testing.T) {
	store := NewStore()
	store.Add(
		domain.BrandAsset{ID: "a"},
		domain.BrandAsset{ID: "b"},
	)

	results, err := store.QueryAssets(context.Background(), driven.AssetFilter{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestQueryAssets_PreservesInsertionOrder(t *testing.T) {
	store := NewStore()
	store.Add(
		domain.BrandAsset{ID: "first", Category: domain.CategoryProduct},
		domain.BrandAsset{ID: "second", Category: domain.CategoryProduct},
		domain.BrandAsset{ID: "third", Category: domain.CategoryProduct},
	)

	results, err := store.QueryAssets(context.Background(), driven.AssetFilter{Category: domain.CategoryProduct})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].ID)
	assert.Equal(t, "second", results[1].ID)
	assert.Equal(t, "third", results[2].ID)
}

func TestQueryAssets_Closed(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Close())

	_, err := store.QueryAssets(context.Background(), driven.AssetFilter{})
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
}
