package services

import (
	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driving"
)

// Ensure WorkflowRouter implements the interface.
var _ driving.Router = (*WorkflowRouter)(nil)

// WorkflowRouter maps a requirement+match record to one of the six fixed
// execution paths. It is a pure decision table: no I/O, no hidden state,
// referentially transparent. A scene that cannot get its ideal brand
// treatment degrades to a simpler path rather than failing.
type WorkflowRouter struct{}

// NewWorkflowRouter creates a router.
func NewWorkflowRouter() *WorkflowRouter { return &WorkflowRouter{} }

// Route applies the decision rules in priority order.
func (r *WorkflowRouter) Route(req domain.BrandRequirements, matches domain.MatchedAssetSet) domain.WorkflowDecision {
	// Rule 1: nothing matched and nothing required.
	if !req.ProductMentioned && !req.LogoRequired && !matches.HasLocation() {
		return decision(domain.PathStandard, domain.QualitySame, 1.0,
			[]string{"generate-scene"},
			"no brand assets required")
	}

	// Rule 2: logo only.
	if req.LogoRequired && !req.ProductMentioned && !matches.HasLocation() {
		if !matches.HasLogo() {
			return decision(domain.PathStandard, domain.QualitySame, 1.0,
				[]string{"generate-scene"},
				"logo required but no logo asset matched",
				"degraded to standard")
		}
		return decision(domain.PathLogoOverlayOnly, domain.QualitySame, 1.1,
			[]string{"generate-scene", "overlay-logo"},
			"logo required without product or location")
	}

	if req.ProductMentioned && matches.HasProduct() {
		// Rule 5 outranks rule 4 when the product is the subject:
		// a hero scene skips compositing and animates the photo.
		if req.OutputType == domain.OutputVideo && isHeroCandidate(req, matches) {
			return decision(domain.PathProductHero, domain.QualityHigher, 1.2,
				[]string{"animate-product-photo", "overlay-logo"},
				"prominent product visibility with a single strong asset",
				"skipping composite, animating raw product photo")
		}

		// Rule 3: still output composites into a generated image.
		if req.OutputType == domain.OutputImage {
			return decision(domain.PathProductImage, domain.QualityHigher, 1.3,
				[]string{"generate-background", "composite-product", "overlay-logo"},
				"product mentioned with matched product asset",
				"still output: composite into generated image")
		}

		// Rule 4: video output composites then animates.
		return decision(domain.PathProductVideo, domain.QualityHigher, 1.6,
			[]string{"generate-background", "composite-product", "overlay-logo", "animate-composite"},
			"product mentioned with matched product asset",
			"video output: composite into environment then animate")
	}

	if req.ProductMentioned && !matches.HasProduct() {
		// AssetNotFound recovery: degrade instead of failing the scene.
		if req.LogoRequired && matches.HasLogo() {
			return decision(domain.PathLogoOverlayOnly, domain.QualityLower, 1.1,
				[]string{"generate-scene", "overlay-logo"},
				"product mentioned but no product asset matched",
				"degraded to logo overlay")
		}
		return decision(domain.PathStandard, domain.QualityLower, 1.0,
			[]string{"generate-scene"},
			"product mentioned but no product asset matched",
			"degraded to standard")
	}

	// Rule 6: location-only branded scene.
	if matches.HasLocation() {
		return decision(domain.PathBrandAssetDirect, domain.QualitySame, 1.0,
			[]string{"use-location-asset", "overlay-logo"},
			"branded environment with matched location asset")
	}

	return decision(domain.PathStandard, domain.QualitySame, 1.0,
		[]string{"generate-scene"},
		"no rule matched, defaulting to standard")
}

// isHeroCandidate reports whether the matches justify the hero path: the
// product is the subject of the scene and a single asset clearly wins.
func isHeroCandidate(req domain.BrandRequirements, matches domain.MatchedAssetSet) bool {
	subject := req.SceneType == domain.SceneProductCloseup ||
		req.ProductVisibility == domain.VisibilityProminent
	if !subject {
		return false
	}
	if len(matches.Products) == 1 {
		return true
	}
	// A clear winner: top score at least double the runner-up.
	return matches.Products[0].Score >= 2*matches.Products[1].Score
}

func decision(path domain.WorkflowPath, quality domain.QualityImpact, cost float64, steps []string, reasons ...string) domain.WorkflowDecision {
	d := domain.WorkflowDecision{
		Path:           path,
		Quality:        quality,
		CostMultiplier: cost,
		Reasons:        reasons,
	}
	d.Steps = make([]domain.WorkflowStep, len(steps))
	for i, name := range steps {
		d.Steps[i] = domain.WorkflowStep{Name: name}
	}
	return d
}
