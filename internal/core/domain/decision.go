package domain

// WorkflowPath is one of the six fixed production strategies.
type WorkflowPath string

const (
	// PathStandard generates the scene with no brand compositing.
	PathStandard WorkflowPath = "standard"
	// PathLogoOverlayOnly generates a scene and overlays a logo.
	PathLogoOverlayOnly WorkflowPath = "logo-overlay-only"
	// PathProductImage composites a product photo into a generated still.
	PathProductImage WorkflowPath = "product-image"
	// PathProductVideo composites a product photo into a generated
	// environment and animates the result.
	PathProductVideo WorkflowPath = "product-video"
	// PathProductHero skips compositing and animates the raw product
	// photo directly.
	PathProductHero WorkflowPath = "product-hero"
	// PathBrandAssetDirect uses a stored location asset as the scene
	// background directly.
	PathBrandAssetDirect WorkflowPath = "brand-asset-direct"
)

// QualityImpact estimates how a path affects output quality relative to
// the standard path.
type QualityImpact string

const (
	// QualityHigher means the path should look better than standard.
	QualityHigher QualityImpact = "higher"
	// QualitySame means no expected quality difference.
	QualitySame QualityImpact = "same"
	// QualityLower means the path trades quality for availability.
	QualityLower QualityImpact = "lower"
)

// WorkflowStep is one named stage of an execution path.
type WorkflowStep struct {
	// Name identifies the stage (e.g. "generate-background").
	Name string
}

// WorkflowDecision is the router's verdict for one scene. It is a pure
// function of the requirements and matches that produced it.
type WorkflowDecision struct {
	// Path is the selected production strategy.
	Path WorkflowPath

	// Steps is the ordered stage list the orchestrator executes.
	Steps []WorkflowStep

	// Reasons is the human-diagnosable decision trail. Never used for
	// control flow.
	Reasons []string

	// Quality estimates the path's quality impact.
	Quality QualityImpact

	// CostMultiplier reflects extra generation/compositing work,
	// always >= 1.0.
	CostMultiplier float64
}
