package domain

// AssetMatch pairs a brand asset with its computed relevance score.
type AssetMatch struct {
	// Asset is the matched asset snapshot.
	Asset BrandAsset

	// Score is the accumulated relevance score. Never negative.
	Score int

	// MatchedKeywords lists the keywords that contributed to the score.
	MatchedKeywords []string

	// Reason is a human-readable explanation of why the asset matched.
	Reason string
}

// MatchedAssetSet holds the ranked matches for one scene, grouped by
// category. Rebuilt on every matching run; never mutated in place.
type MatchedAssetSet struct {
	// Products are the top product matches, score-sorted, at most 5.
	Products []AssetMatch

	// Logos are the top logo matches, at most 3.
	Logos []AssetMatch

	// Locations are the top location matches, at most 3.
	Locations []AssetMatch
}

// HasProduct reports whether any product asset matched.
func (m MatchedAssetSet) HasProduct() bool { return len(m.Products) > 0 }

// HasLogo reports whether any logo asset matched.
func (m MatchedAssetSet) HasLogo() bool { return len(m.Logos) > 0 }

// HasLocation reports whether any location asset matched.
func (m MatchedAssetSet) HasLocation() bool { return len(m.Locations) > 0 }

// Empty reports whether no asset matched in any category.
func (m MatchedAssetSet) Empty() bool {
	return !m.HasProduct() && !m.HasLogo() && !m.HasLocation()
}

// BestProduct returns the highest-scoring product match.
// Callers must check HasProduct first.
func (m MatchedAssetSet) BestProduct() AssetMatch { return m.Products[0] }

// BestLogo returns the highest-scoring logo match.
// Callers must check HasLogo first.
func (m MatchedAssetSet) BestLogo() AssetMatch { return m.Logos[0] }

// CategoryMatches groups full-text matches under one category, ranked by
// the aggregate score of its members.
type CategoryMatches struct {
	// Category is the asset category for this group.
	Category AssetCategory

	// Score is the sum of member scores, used to rank categories.
	Score int

	// Matches are the member matches, score-sorted.
	Matches []AssetMatch
}
