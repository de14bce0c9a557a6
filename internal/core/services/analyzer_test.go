package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

func newTestAnalyzer() *RequirementAnalyzer {
	return NewRequirementAnalyzer(
		[]string{"Black Cohosh Extract", "Night Serum"},
		[]string{"BrandName"},
	)
}

func TestAnalyze_ProductWithLogo(t *testing.T) {
	a := newTestAnalyzer()

	req := a.Analyze(
		"Close-up of Black Cohosh Extract on wooden desk, BrandName logo visible",
		"Our signature extract, made for you.",
	)

	assert.True(t, req.ProductMentioned)
	assert.True(t, req.LogoRequired)
	assert.True(t, req.RequiresBrandAssets)
	assert.Greater(t, req.Confidence, 0.4)
	assert.Contains(t, req.ProductNames, "black cohosh extract")
	assert.Equal(t, domain.LogoPrimary, req.LogoType)
	assert.Equal(t, domain.SceneProductCloseup, req.SceneType)
	assert.Equal(t, domain.VisibilityProminent, req.ProductVisibility)
}

func TestAnalyze_NoSignals(t *testing.T) {
	a := newTestAnalyzer()

	req := a.Analyze("Beautiful sunset over mountains, peaceful landscape", "")

	assert.False(t, req.ProductMentioned)
	assert.False(t, req.LogoRequired)
	assert.False(t, req.RequiresBrandAssets)
	assert.Equal(t, domain.SceneStandard, req.SceneType)
	assert.Less(t, req.Confidence, 0.2)
	assert.Empty(t, req.Signals)
}

func TestAnalyze_LogoVariants(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name      string
		direction string
		want      domain.LogoType
	}{
		{"watermark", "Scenic shot with a subtle watermark in the corner", domain.LogoWatermark},
		{"certification", "Product shot with certified quality seal", domain.LogoCertification},
		{"partner", "Event footage with partner logo on banners", domain.LogoPartner},
		{"primary", "Office scene with the logo on the wall", domain.LogoPrimary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := a.Analyze(tt.direction, "")
			assert.True(t, req.LogoRequired)
			assert.Equal(t, tt.want, req.LogoType)
		})
	}
}

func TestAnalyze_WatermarkImpliesSubtleBranding(t *testing.T) {
	a := newTestAnalyzer()

	req := a.Analyze("Landscape with a watermark", "")

	assert.Equal(t, domain.VisibilitySubtle, req.BrandingVisibility)
}

func TestAnalyze_InContextScene(t *testing.T) {
	a := newTestAnalyzer()

	req := a.Analyze("Night Serum on a table in a cozy kitchen", "")

	assert.True(t, req.ProductMentioned)
	assert.Equal(t, domain.SceneProductInContext, req.SceneType)
}

func TestAnalyze_LocationCue(t *testing.T) {
	a := newTestAnalyzer()

	req := a.Analyze("Exterior shot of our flagship storefront at dusk", "")

	assert.Equal(t, domain.SceneBrandedEnvironment, req.SceneType)
	assert.True(t, req.RequiresBrandAssets)
}

func TestAnalyze_ConfidenceClamped(t *testing.T) {
	a := newTestAnalyzer()

	// Every signal class fires; the raw sum exceeds 1.0.
	req := a.Analyze(
		"Close-up hero shot of Black Cohosh Extract and Night Serum bottle on a desk at our flagship storefront, BrandName logo prominent",
		"narrated",
	)

	assert.LessOrEqual(t, req.Confidence, 1.0)
	assert.Greater(t, req.Confidence, 0.9)
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := newTestAnalyzer()
	direction := "Night Serum close-up with logo"

	first := a.Analyze(direction, "spoken line")
	second := a.Analyze(direction, "spoken line")

	assert.Equal(t, first, second)
}
