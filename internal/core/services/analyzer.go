package services

import (
	"strings"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driving"
)

// Ensure RequirementAnalyzer implements the interface.
var _ driving.Analyzer = (*RequirementAnalyzer)(nil)

// RequirementAnalyzer classifies scene text into brand requirements via
// keyword and phrase detection. It is a pure function of its inputs, the
// static cue tables, and the product dictionary it was constructed with.
type RequirementAnalyzer struct {
	// productNames is the known product-name dictionary, lowercased.
	productNames []string

	// brandNames are entity names whose mention implies branding intent.
	brandNames []string
}

// NewRequirementAnalyzer creates an analyzer with the given product and
// brand name dictionaries. Both may be empty; generic cues still fire.
func NewRequirementAnalyzer(productNames, brandNames []string) *RequirementAnalyzer {
	return &RequirementAnalyzer{
		productNames: lowerAll(productNames),
		brandNames:   lowerAll(brandNames),
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(strings.ToLower(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Analyze extracts a requirement record from the scene text. Absence of
// signals yields a low-confidence "standard, no brand assets" record.
func (a *RequirementAnalyzer) Analyze(visualDirection, narration string) domain.BrandRequirements {
	text := strings.ToLower(visualDirection + " " + narration)

	req := domain.BrandRequirements{
		SceneType:          domain.SceneStandard,
		ProductVisibility:  domain.VisibilityFeatured,
		BrandingVisibility: domain.VisibilityFeatured,
		OutputType:         domain.OutputImage,
	}
	confidence := 0.0
	fire := func(signal string, weight float64) {
		req.Signals = append(req.Signals, signal)
		confidence += weight
	}

	// Product names from the dictionary are the strongest signal.
	for _, name := range a.productNames {
		if strings.Contains(text, name) {
			req.ProductMentioned = true
			req.ProductNames = append(req.ProductNames, name)
			fire("product-name:"+name, weightProductName)
		}
	}

	// Generic product cues. Fire once; repeated cues add nothing.
	if containsAny(text, productCueWords) {
		if !req.ProductMentioned {
			req.ProductMentioned = true
		}
		fire("product-cue", weightProductCue)
	}

	// Brand-name mention implies branding intent even without "logo".
	for _, name := range a.brandNames {
		if strings.Contains(text, name) {
			req.LogoRequired = true
			fire("brand-name:"+name, weightLogoCue)
			break
		}
	}

	// Logo variant detection. Watermark/certification/partner cues are
	// checked before the generic cue so the variant sticks.
	switch {
	case containsAny(text, watermarkCueWords):
		req.LogoRequired = true
		req.LogoType = domain.LogoWatermark
		req.BrandingVisibility = domain.VisibilitySubtle
		fire("logo-watermark", weightLogoCue)
	case containsAny(text, certificationCueWords):
		req.LogoRequired = true
		req.LogoType = domain.LogoCertification
		fire("logo-certification", weightLogoCue)
	case containsAny(text, partnerCueWords):
		req.LogoRequired = true
		req.LogoType = domain.LogoPartner
		fire("logo-partner", weightLogoCue)
	case containsAny(text, logoCueWords):
		req.LogoRequired = true
		req.LogoType = domain.LogoPrimary
		fire("logo-cue", weightLogoCue)
	}
	if req.LogoRequired && req.LogoType == domain.LogoNone {
		req.LogoType = domain.LogoPrimary
	}

	// Location cues route toward branded environments.
	if containsAny(text, locationCueWords) {
		req.SceneType = domain.SceneBrandedEnvironment
		fire("location-cue", weightLocationCue)
	}

	// Scene type cues. Close-up beats in-context when both appear:
	// a close-up of a product on a desk is still a close-up.
	if containsAny(text, inContextCueWords) && req.ProductMentioned {
		req.SceneType = domain.SceneProductInContext
		fire("in-context-cue", weightSceneCue)
	}
	if containsAny(text, closeupCueWords) && req.ProductMentioned {
		req.SceneType = domain.SceneProductCloseup
		req.ProductVisibility = domain.VisibilityProminent
		fire("closeup-cue", weightSceneCue)
	}

	// Visibility modifiers.
	if containsAny(text, backgroundCueWords) && req.SceneType != domain.SceneProductCloseup {
		req.ProductVisibility = domain.VisibilityBackground
	}
	if containsAny(text, subtleCueWords) {
		req.BrandingVisibility = domain.VisibilitySubtle
	}
	if containsAny(text, prominentCueWords) {
		req.ProductVisibility = domain.VisibilityProminent
	}

	// Non-empty narration nudges confidence: the scene was scripted.
	if strings.TrimSpace(narration) != "" && len(req.Signals) > 0 {
		fire("narration", weightNarration)
	}

	req.RequiresBrandAssets = req.ProductMentioned || req.LogoRequired ||
		req.SceneType == domain.SceneBrandedEnvironment
	req.Confidence = clamp01(confidence)
	return req
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
