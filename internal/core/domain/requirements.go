package domain

// Visibility expresses how prominently a brand element should appear.
type Visibility string

const (
	// VisibilityBackground keeps the element incidental.
	VisibilityBackground Visibility = "background"
	// VisibilityFeatured gives the element a clear supporting role.
	VisibilityFeatured Visibility = "featured"
	// VisibilityProminent makes the element the subject of the scene.
	VisibilityProminent Visibility = "prominent"
	// VisibilitySubtle keeps the element barely noticeable.
	VisibilitySubtle Visibility = "subtle"
)

// LogoType identifies which logo variant a scene calls for.
type LogoType string

const (
	// LogoNone means no logo is required.
	LogoNone LogoType = ""
	// LogoPrimary is the main brand mark.
	LogoPrimary LogoType = "primary"
	// LogoWatermark is a low-opacity corner mark.
	LogoWatermark LogoType = "watermark"
	// LogoCertification is a third-party seal or badge.
	LogoCertification LogoType = "certification"
	// LogoPartner is a co-branding partner mark.
	LogoPartner LogoType = "partner"
)

// BrandRequirements is the structured record the analyzer extracts from a
// scene's visual direction and narration. Produced once per scene and
// read-only afterward.
type BrandRequirements struct {
	// ProductMentioned is true when the text references a known product.
	ProductMentioned bool

	// LogoRequired is true when the text asks for a logo or branding.
	LogoRequired bool

	// RequiresBrandAssets is true when any brand material is needed.
	RequiresBrandAssets bool

	// SceneType is the derived (or caller-hinted) scene classification.
	SceneType SceneType

	// ProductVisibility is how prominently the product should appear.
	ProductVisibility Visibility

	// BrandingVisibility is how prominently logos/branding should appear.
	BrandingVisibility Visibility

	// ProductNames lists the product names detected in the text.
	ProductNames []string

	// LogoType is the logo variant the scene calls for.
	LogoType LogoType

	// Confidence is the clamped weighted sum of fired signals, in [0,1].
	Confidence float64

	// OutputType is carried through from the scene descriptor.
	OutputType OutputType

	// Signals lists which classifier signals fired, for diagnostics
	// and tests. Never used for control flow.
	Signals []string
}
