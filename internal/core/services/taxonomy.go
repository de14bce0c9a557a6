package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

// AssetType is one entry of the brand asset taxonomy: a declared type
// identifier with the prompt keywords that select it from free text.
type AssetType struct {
	// ID is the taxonomy identifier, e.g. "logo-primary-color".
	ID string

	// Category groups the type.
	Category domain.AssetCategory

	// Keywords are the prompt keywords associated with the type.
	Keywords []string
}

// DefaultTaxonomy returns the built-in asset taxonomy.
func DefaultTaxonomy() []AssetType {
	return []AssetType{
		{ID: "logo-primary-color", Category: domain.CategoryLogo,
			Keywords: []string{"logo", "brand mark", "wordmark", "branding"}},
		{ID: "logo-primary-mono", Category: domain.CategoryLogo,
			Keywords: []string{"monochrome logo", "white logo", "black logo"}},
		{ID: "logo-watermark", Category: domain.CategoryLogo,
			Keywords: []string{"watermark", "subtle logo", "corner logo"}},
		{ID: "logo-certification", Category: domain.CategoryLogo,
			Keywords: []string{"certification", "certified", "seal", "badge"}},
		{ID: "logo-partner", Category: domain.CategoryLogo,
			Keywords: []string{"partner", "co-branded", "partnership"}},
		{ID: "product-hero", Category: domain.CategoryProduct,
			Keywords: []string{"hero shot", "close-up", "closeup", "featured product", "packshot"}},
		{ID: "product-packshot", Category: domain.CategoryProduct,
			Keywords: []string{"product", "bottle", "jar", "packaging", "box"}},
		{ID: "product-lifestyle", Category: domain.CategoryProduct,
			Keywords: []string{"in context", "lifestyle", "in hand", "on a desk", "on a table", "desk", "table"}},
		{ID: "location-storefront", Category: domain.CategoryLocation,
			Keywords: []string{"storefront", "shop front", "flagship", "store"}},
		{ID: "location-interior", Category: domain.CategoryLocation,
			Keywords: []string{"interior", "office", "showroom", "facility", "headquarters"}},
		{ID: "location-aerial", Category: domain.CategoryLocation,
			Keywords: []string{"aerial", "drone shot", "bird's eye"}},
	}
}

// Taxonomy resolves taxonomy types from free text and answers category
// and keyword lookups for the matcher.
type Taxonomy struct {
	types  []AssetType
	byID   map[string]AssetType
	byName map[string]int // ID -> table index, for stable ordering
}

// NewTaxonomy builds a taxonomy from the given type table.
func NewTaxonomy(types []AssetType) *Taxonomy {
	t := &Taxonomy{
		types:  types,
		byID:   make(map[string]AssetType, len(types)),
		byName: make(map[string]int, len(types)),
	}
	for i, at := range types {
		t.byID[at.ID] = at
		t.byName[at.ID] = i
	}
	return t
}

// Lookup returns the type entry for a declared type ID.
func (t *Taxonomy) Lookup(id string) (AssetType, bool) {
	at, ok := t.byID[id]
	return at, ok
}

// TypeIDs returns every taxonomy type identifier, in table order.
func (t *Taxonomy) TypeIDs() []string {
	ids := make([]string, len(t.types))
	for i, at := range t.types {
		ids[i] = at.ID
	}
	return ids
}

// TypeMatch is a taxonomy type that matched free text, with the keywords
// that hit and their summed length (longer keywords carry more
// specificity).
type TypeMatch struct {
	Type            AssetType
	MatchedKeywords []string
	KeywordWeight   int
}

// ResolveTypes returns the taxonomy types whose keywords appear in the
// text, ordered by descending keyword weight; ties keep table order.
func (t *Taxonomy) ResolveTypes(text string) []TypeMatch {
	lower := strings.ToLower(text)

	var matches []TypeMatch
	for _, at := range t.types {
		var hit []string
		weight := 0
		for _, kw := range at.Keywords {
			if strings.Contains(lower, kw) {
				hit = append(hit, kw)
				weight += len(kw)
			}
		}
		if len(hit) > 0 {
			matches = append(matches, TypeMatch{Type: at, MatchedKeywords: hit, KeywordWeight: weight})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].KeywordWeight > matches[j].KeywordWeight
	})
	return matches
}

// TypesForRequirements maps a requirement record to the declared types it
// calls for, most specific first.
func (t *Taxonomy) TypesForRequirements(req domain.BrandRequirements, category domain.AssetCategory) []string {
	var ids []string
	switch category {
	case domain.CategoryLogo:
		switch req.LogoType {
		case domain.LogoWatermark:
			ids = append(ids, "logo-watermark")
		case domain.LogoCertification:
			ids = append(ids, "logo-certification")
		case domain.LogoPartner:
			ids = append(ids, "logo-partner")
		}
		ids = append(ids, "logo-primary-color", "logo-primary-mono")
	case domain.CategoryProduct:
		if req.ProductVisibility == domain.VisibilityProminent || req.ProductVisibility == domain.VisibilityFeatured {
			ids = append(ids, "product-hero")
		}
		ids = append(ids, "product-packshot", "product-lifestyle")
	case domain.CategoryLocation:
		ids = append(ids, "location-storefront", "location-interior", "location-aerial")
	}
	return ids
}

// SubQualifiers returns the sub-intent terms that earn the sub-qualifier
// bonus for the given requirements and category. A requested prominent
// visibility boosts assets whose declared type contains "hero"; a subtle
// branding intent boosts "watermark" and "mono" variants.
func (t *Taxonomy) SubQualifiers(req domain.BrandRequirements, category domain.AssetCategory) []string {
	switch category {
	case domain.CategoryProduct:
		if req.ProductVisibility == domain.VisibilityProminent {
			return []string{"hero"}
		}
		if req.ProductVisibility == domain.VisibilityBackground {
			return []string{"lifestyle"}
		}
	case domain.CategoryLogo:
		if req.BrandingVisibility == domain.VisibilitySubtle {
			return []string{"watermark", "mono"}
		}
	}
	return nil
}
