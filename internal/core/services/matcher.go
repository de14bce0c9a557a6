package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
	"github.com/custodia-labs/scenekit/internal/core/ports/driving"
	"github.com/custodia-labs/scenekit/internal/logger"
)

// Ensure AssetMatcher implements the interface.
var _ driving.Matcher = (*AssetMatcher)(nil)

// AssetMatcher scores and ranks brand assets from the repository against
// requirements or free-text visual directions. Scoring is pure; only the
// repository query suspends. Repository failures fail closed: the match
// set comes back empty and the router degrades the scene instead of
// aborting it.
type AssetMatcher struct {
	store    driven.AssetStore
	taxonomy *Taxonomy
	weights  domain.ScoreWeights
}

// NewAssetMatcher creates a matcher over the given store and taxonomy.
func NewAssetMatcher(store driven.AssetStore, taxonomy *Taxonomy, weights domain.ScoreWeights) *AssetMatcher {
	if taxonomy == nil {
		taxonomy = NewTaxonomy(DefaultTaxonomy())
	}
	return &AssetMatcher{store: store, taxonomy: taxonomy, weights: weights}
}

// MatchAssets ranks repository assets against the requirements, grouped
// by category and capped at 5 products, 3 logos, 3 locations.
func (m *AssetMatcher) MatchAssets(ctx context.Context, req domain.BrandRequirements) domain.MatchedAssetSet {
	logger.Section("Asset Matching")

	var set domain.MatchedAssetSet
	if req.ProductMentioned {
		set.Products = m.matchCategory(ctx, req, domain.CategoryProduct, m.weights.MaxProducts)
	}
	if req.LogoRequired {
		set.Logos = m.matchCategory(ctx, req, domain.CategoryLogo, m.weights.MaxLogos)
	}
	if req.SceneType == domain.SceneBrandedEnvironment {
		set.Locations = m.matchCategory(ctx, req, domain.CategoryLocation, m.weights.MaxLocations)
	}

	logger.Info("Matched: %d products, %d logos, %d locations",
		len(set.Products), len(set.Logos), len(set.Locations))
	return set
}

// matchCategory queries one category and returns the capped ranked list.
func (m *AssetMatcher) matchCategory(ctx context.Context, req domain.BrandRequirements, category domain.AssetCategory, cap int) []domain.AssetMatch {
	wantedTypes := m.taxonomy.TypesForRequirements(req, category)

	// Inclusive OR filter: declared type OR category OR keyword hit.
	// Assets with incomplete metadata still arrive via the category
	// or keyword legs.
	filter := driven.AssetFilter{
		Types:       wantedTypes,
		Category:    category,
		KeywordsAny: req.ProductNames,
		ActiveOnly:  true,
	}

	assets, err := m.store.QueryAssets(ctx, filter)
	if err != nil {
		logger.Warn("asset store query failed for %s: %v (matching fails closed)", category, err)
		return nil
	}
	logger.Debug("%s candidates: %d", category, len(assets))

	matches := make([]domain.AssetMatch, 0, len(assets))
	for _, asset := range assets {
		match := m.scoreAsset(asset, req, wantedTypes, category)
		if match.Score > 0 {
			matches = append(matches, match)
		}
	}

	// Stable sort preserves repository order on ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > cap {
		matches = matches[:cap]
	}
	for _, match := range matches {
		logger.Debug("  %s %q score=%d (%s)", category, match.Asset.Name, match.Score, match.Reason)
	}
	return matches
}

// scoreAsset accumulates the relevance score for one asset. The score is
// never negative: every term adds.
func (m *AssetMatcher) scoreAsset(asset domain.BrandAsset, req domain.BrandRequirements, wantedTypes []string, category domain.AssetCategory) domain.AssetMatch {
	score := 0
	var matched []string
	var reasons []string

	if asset.AssetType != "" {
		// Typed path: declared taxonomy type drives the score.
		for _, want := range wantedTypes {
			if asset.AssetType == want {
				score += m.weights.TypeMatch
				reasons = append(reasons, "declared type "+asset.AssetType)
				break
			}
		}

		// Sub-qualifier bonus: requested sub-intent terms found in the
		// declared type. Capped at the configured maximum.
		subBonus := 0
		for _, sub := range m.taxonomy.SubQualifiers(req, category) {
			if strings.Contains(asset.AssetType, sub) {
				subBonus += m.weights.SubQualifier
			}
		}
		if subBonus > m.weights.SubQualifier {
			subBonus = m.weights.SubQualifier
		}
		if subBonus > 0 {
			score += subBonus
			reasons = append(reasons, "sub-intent qualifier")
		}

		// Product-name hits: +NameSubstring in free text, upgraded to
		// +StructuredName when the hit lands in the asset name itself.
		nameLower := strings.ToLower(asset.Name)
		textLower := asset.SearchText()
		for _, product := range req.ProductNames {
			switch {
			case strings.Contains(nameLower, product):
				score += m.weights.StructuredName
				matched = append(matched, product)
			case strings.Contains(textLower, product):
				score += m.weights.NameSubstring
				matched = append(matched, product)
			}
		}

		score += asset.Priority
		if asset.IsDefault {
			score += m.weights.DefaultBonus
		}
		if asset.HasTransparency() {
			score += m.weights.TransparentBonus
		}
	} else {
		// Keyword-only path: no declared type, score purely from
		// substring matches in the concatenated asset text.
		text := asset.SearchText()
		probes := append([]string{}, req.ProductNames...)
		for _, id := range wantedTypes {
			if at, ok := m.taxonomy.Lookup(id); ok {
				probes = append(probes, at.Keywords...)
			}
		}
		for _, probe := range probes {
			if strings.Contains(text, probe) {
				score += m.weights.NameSubstring
				matched = append(matched, probe)
			}
		}
		if score > 0 {
			reasons = append(reasons, "keyword-only match")
			score += asset.Priority
			if asset.IsDefault {
				score += m.weights.DefaultBonusGeneric
			}
			if asset.HasTransparency() {
				score += m.weights.TransparentBonusKeyword
			}
		}
	}

	return domain.AssetMatch{
		Asset:           asset,
		Score:           score,
		MatchedKeywords: matched,
		Reason:          buildReason(reasons, matched, asset.Priority),
	}
}

func buildReason(reasons, matched []string, priority int) string {
	parts := append([]string{}, reasons...)
	if len(matched) > 0 {
		parts = append(parts, fmt.Sprintf("%d keyword hits", len(matched)))
	}
	if priority > 0 {
		parts = append(parts, fmt.Sprintf("priority %d", priority))
	}
	if len(parts) == 0 {
		return "no signals"
	}
	return strings.Join(parts, "; ")
}

// FindMatchingBrandAssets resolves taxonomy types from a longer visual
// direction string, scores assets of those types, and returns the
// results grouped by category, categories ranked by aggregate score.
func (m *AssetMatcher) FindMatchingBrandAssets(ctx context.Context, visualDirection string) []domain.CategoryMatches {
	logger.Section("Full-Text Asset Matching")

	typeMatches := m.taxonomy.ResolveTypes(visualDirection)
	if len(typeMatches) == 0 {
		logger.Debug("no taxonomy types matched the direction text")
		return nil
	}
	logger.Debug("matched %d taxonomy types", len(typeMatches))

	matchedIDs := make([]string, 0, len(typeMatches))
	typeIndex := make(map[string]int, len(typeMatches))
	var promptKeywords []string
	for i, tm := range typeMatches {
		matchedIDs = append(matchedIDs, tm.Type.ID)
		typeIndex[tm.Type.ID] = i
		promptKeywords = append(promptKeywords, tm.MatchedKeywords...)
	}

	assets, err := m.store.QueryAssets(ctx, driven.AssetFilter{
		Types:       matchedIDs,
		KeywordsAny: promptKeywords,
		ActiveOnly:  true,
	})
	if err != nil {
		logger.Warn("asset store query failed: %v (matching fails closed)", err)
		return nil
	}

	lowerText := strings.ToLower(visualDirection)
	var all []domain.AssetMatch
	for _, asset := range assets {
		match := m.scoreFullText(asset, lowerText, typeMatches, typeIndex, promptKeywords)
		if match.Score > 0 {
			all = append(all, match)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })

	return groupByCategory(all)
}

// scoreFullText scores one asset in the taxonomy-driven full-text mode.
func (m *AssetMatcher) scoreFullText(asset domain.BrandAsset, lowerText string, typeMatches []TypeMatch, typeIndex map[string]int, promptKeywords []string) domain.AssetMatch {
	score := 0
	var matched []string
	var reasons []string

	if idx, ok := typeIndex[asset.AssetType]; ok {
		tm := typeMatches[idx]
		// Longer matched keywords carry more specificity weight.
		score += tm.KeywordWeight
		matched = append(matched, tm.MatchedKeywords...)

		positional := m.weights.PositionalBase - idx*m.weights.PositionalStep
		if positional > 0 {
			score += positional
		}
		score += m.weights.RankedTypeBonus
		reasons = append(reasons, fmt.Sprintf("type %s ranked #%d", asset.AssetType, idx+1))
	} else if asset.AssetType == "" {
		// Untyped assets score from the union of prompt keywords
		// belonging to the matched types.
		text := asset.SearchText()
		for _, kw := range promptKeywords {
			if strings.Contains(text, kw) {
				score += len(kw)
				matched = append(matched, kw)
			}
		}
		if score > 0 {
			reasons = append(reasons, "untyped keyword match")
		}
	}

	nameLower := strings.ToLower(asset.Name)
	if len(nameLower) > 2 && strings.Contains(lowerText, nameLower) {
		score += m.weights.DirectNameHit
		reasons = append(reasons, "asset name appears in direction")
	}
	entityLower := strings.ToLower(asset.EntityName)
	if len(entityLower) > 2 && strings.Contains(lowerText, entityLower) {
		score += m.weights.EntityNameHit
		reasons = append(reasons, "brand name appears in direction")
	}

	return domain.AssetMatch{
		Asset:           asset,
		Score:           score,
		MatchedKeywords: matched,
		Reason:          buildReason(reasons, matched, 0),
	}
}

// groupByCategory buckets score-sorted matches and ranks categories by
// their aggregate score. Bucket order is stable for equal aggregates.
func groupByCategory(matches []domain.AssetMatch) []domain.CategoryMatches {
	order := []domain.AssetCategory{domain.CategoryProduct, domain.CategoryLogo, domain.CategoryLocation}
	buckets := make(map[domain.AssetCategory]*domain.CategoryMatches)
	for _, match := range matches {
		bucket, ok := buckets[match.Asset.Category]
		if !ok {
			bucket = &domain.CategoryMatches{Category: match.Asset.Category}
			buckets[match.Asset.Category] = bucket
		}
		bucket.Score += match.Score
		bucket.Matches = append(bucket.Matches, match)
	}

	var groups []domain.CategoryMatches
	for _, cat := range order {
		if bucket, ok := buckets[cat]; ok {
			groups = append(groups, *bucket)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Score > groups[j].Score })
	return groups
}
