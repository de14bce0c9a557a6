package driving

import (
	"context"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

// Matcher ranks brand assets against requirements or free text.
type Matcher interface {
	// MatchAssets scores repository assets against the requirements
	// and returns the capped, score-sorted match set. Repository
	// failures fail closed: the set is empty and the condition is
	// logged, never returned as an error.
	MatchAssets(ctx context.Context, req domain.BrandRequirements) domain.MatchedAssetSet

	// FindMatchingBrandAssets resolves taxonomy types from a longer
	// visual-direction string and returns matches grouped by category,
	// categories ranked by aggregate score.
	FindMatchingBrandAssets(ctx context.Context, visualDirection string) []domain.CategoryMatches
}
