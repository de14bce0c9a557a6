package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scenekit/internal/adapters/driven/assetstore/memory"
	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

// failingStore is an AssetStore whose queries always fail.
type failingStore struct{}

func (failingStore) QueryAssets(context.Context, driven.AssetFilter) ([]domain.BrandAsset, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Close() error { return nil }

func seededStore() *memory.Store {
	store := memory.NewStore()
	store.Add(
		domain.BrandAsset{
			ID: "p1", Name: "Black Cohosh Extract Hero", Category: domain.CategoryProduct,
			AssetType: "product-hero", MimeType: "image/png", EntityName: "Herbalix",
		},
		domain.BrandAsset{
			ID: "p2", Name: "Extract Packshot", Category: domain.CategoryProduct,
			AssetType: "product-packshot", MimeType: "image/jpeg",
			Keywords: []string{"bottle", "black cohosh extract"},
		},
		domain.BrandAsset{
			ID: "p3", Name: "Lifestyle shot", Category: domain.CategoryProduct,
			Keywords: []string{"black cohosh extract", "desk"}, MimeType: "image/jpeg",
		},
		domain.BrandAsset{
			ID: "l1", Name: "Herbalix primary logo", Category: domain.CategoryLogo,
			AssetType: "logo-primary-color", MimeType: "image/png", IsDefault: true,
			EntityName: "Herbalix",
		},
		domain.BrandAsset{
			ID: "l2", Name: "Herbalix watermark", Category: domain.CategoryLogo,
			AssetType: "logo-watermark", MimeType: "image/png", EntityName: "Herbalix",
		},
		domain.BrandAsset{
			ID: "loc1", Name: "Flagship storefront", Category: domain.CategoryLocation,
			AssetType: "location-storefront", MimeType: "image/jpeg",
		},
	)
	return store
}

func productRequirements() domain.BrandRequirements {
	return domain.BrandRequirements{
		ProductMentioned:  true,
		ProductNames:      []string{"black cohosh extract"},
		LogoRequired:      true,
		LogoType:          domain.LogoPrimary,
		ProductVisibility: domain.VisibilityProminent,
	}
}

func TestMatchAssets_CategoriesGatedByRequirements(t *testing.T) {
	m := NewAssetMatcher(seededStore(), nil, domain.DefaultScoreWeights())

	t.Run("product and logo", func(t *testing.T) {
		set := m.MatchAssets(context.Background(), productRequirements())
		assert.True(t, set.HasProduct())
		assert.True(t, set.HasLogo())
		assert.False(t, set.HasLocation())
	})

	t.Run("location only when branded environment", func(t *testing.T) {
		req := domain.BrandRequirements{SceneType: domain.SceneBrandedEnvironment}
		set := m.MatchAssets(context.Background(), req)
		assert.False(t, set.HasProduct())
		assert.False(t, set.HasLogo())
		assert.True(t, set.HasLocation())
	})

	t.Run("nothing requested, nothing matched", func(t *testing.T) {
		set := m.MatchAssets(context.Background(), domain.BrandRequirements{})
		assert.True(t, set.Empty())
	})
}

func TestMatchAssets_TypedOutranksKeywordOnly(t *testing.T) {
	m := NewAssetMatcher(seededStore(), nil, domain.DefaultScoreWeights())

	set := m.MatchAssets(context.Background(), productRequirements())

	require.True(t, set.HasProduct())
	// The hero asset carries a declared type matching the prominent
	// visibility; the untyped lifestyle shot scores from keywords alone.
	assert.Equal(t, "p1", set.BestProduct().Asset.ID)
	last := set.Products[len(set.Products)-1]
	assert.Equal(t, "p3", last.Asset.ID)
	assert.Greater(t, set.BestProduct().Score, last.Score)
}

func TestMatchAssets_WatermarkIntentPrefersWatermark(t *testing.T) {
	m := NewAssetMatcher(seededStore(), nil, domain.DefaultScoreWeights())
	req := domain.BrandRequirements{
		LogoRequired:       true,
		LogoType:           domain.LogoWatermark,
		BrandingVisibility: domain.VisibilitySubtle,
	}

	set := m.MatchAssets(context.Background(), req)

	require.True(t, set.HasLogo())
	assert.Equal(t, "l2", set.BestLogo().Asset.ID)
}

func TestMatchAssets_CapsAndTieStability(t *testing.T) {
	store := memory.NewStore()
	for i := 0; i < 8; i++ {
		store.Add(domain.BrandAsset{
			ID:        fmt.Sprintf("p%d", i),
			Name:      "Packshot",
			Category:  domain.CategoryProduct,
			AssetType: "product-packshot",
			MimeType:  "image/jpeg",
		})
	}
	m := NewAssetMatcher(store, nil, domain.DefaultScoreWeights())

	set := m.MatchAssets(context.Background(), domain.BrandRequirements{
		ProductMentioned: true,
		ProductNames:     []string{"serum"},
	})

	require.Len(t, set.Products, 5)
	// Identical scores keep repository insertion order.
	for i, match := range set.Products {
		assert.Equal(t, fmt.Sprintf("p%d", i), match.Asset.ID)
	}
}

func TestMatchAssets_FailsClosedOnStoreError(t *testing.T) {
	m := NewAssetMatcher(failingStore{}, nil, domain.DefaultScoreWeights())

	set := m.MatchAssets(context.Background(), productRequirements())

	assert.True(t, set.Empty())
}

func TestMatchAssets_PriorityBreaksTies(t *testing.T) {
	store := memory.NewStore()
	store.Add(
		domain.BrandAsset{ID: "low", Name: "Packshot", Category: domain.CategoryProduct,
			AssetType: "product-packshot", MimeType: "image/jpeg"},
		domain.BrandAsset{ID: "high", Name: "Packshot", Category: domain.CategoryProduct,
			AssetType: "product-packshot", MimeType: "image/jpeg", Priority: 4},
	)
	m := NewAssetMatcher(store, nil, domain.DefaultScoreWeights())

	set := m.MatchAssets(context.Background(), domain.BrandRequirements{
		ProductMentioned: true,
	})

	require.Len(t, set.Products, 2)
	assert.Equal(t, "high", set.BestProduct().Asset.ID)
}

func TestFindMatchingBrandAssets_GroupsByCategory(t *testing.T) {
	m := NewAssetMatcher(seededStore(), nil, domain.DefaultScoreWeights())

	groups := m.FindMatchingBrandAssets(context.Background(),
		"Close-up of Black Cohosh Extract Hero on a desk, Herbalix logo visible")

	require.NotEmpty(t, groups)
	for _, g := range groups {
		assert.NotZero(t, g.Score)
		require.NotEmpty(t, g.Matches)
		for _, match := range g.Matches {
			assert.Equal(t, g.Category, match.Asset.Category)
		}
	}

	// The product asset whose name appears verbatim in the direction
	// collects the direct-name bonus and wins its group.
	var products *domain.CategoryMatches
	for i := range groups {
		if groups[i].Category == domain.CategoryProduct {
			products = &groups[i]
		}
	}
	require.NotNil(t, products)
	assert.Equal(t, "p1", products.Matches[0].Asset.ID)
	assert.Contains(t, products.Matches[0].Reason, "asset name appears in direction")
}

func TestFindMatchingBrandAssets_NoTaxonomyHit(t *testing.T) {
	m := NewAssetMatcher(seededStore(), nil, domain.DefaultScoreWeights())

	groups := m.FindMatchingBrandAssets(context.Background(), "Abstract colors swirling")

	assert.Nil(t, groups)
}

func TestFindMatchingBrandAssets_FailsClosedOnStoreError(t *testing.T) {
	m := NewAssetMatcher(failingStore{}, nil, domain.DefaultScoreWeights())

	groups := m.FindMatchingBrandAssets(context.Background(), "product close-up with logo")

	assert.Nil(t, groups)
}
