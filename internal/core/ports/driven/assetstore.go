package driven

import (
	"context"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

// AssetFilter narrows an asset repository query. All populated fields are
// combined with an inclusive OR: an asset qualifies when its declared type
// is in Types, OR its category equals Category, OR any of its keywords is
// in KeywordsAny. Assets with incomplete metadata are never silently
// dropped by an exclusive filter.
type AssetFilter struct {
	// Types matches the asset's declared taxonomy type.
	Types []string

	// Category matches the asset category.
	Category domain.AssetCategory

	// KeywordsAny matches any of the asset's keywords.
	KeywordsAny []string

	// ActiveOnly excludes retired assets.
	ActiveOnly bool
}

// Empty reports whether the filter has no criteria, which matches
// everything.
func (f AssetFilter) Empty() bool {
	return len(f.Types) == 0 && f.Category == "" && len(f.KeywordsAny) == 0
}

// AssetStore is the brand asset repository port. Implementations must
// return assets in a stable order so score ties preserve repository order.
type AssetStore interface {
	// QueryAssets returns asset snapshots matching the filter.
	QueryAssets(ctx context.Context, filter AssetFilter) ([]domain.BrandAsset, error)

	// Close releases store resources.
	Close() error
}
