package driving

import (
	"context"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

// ScenePlan bundles the per-scene decision chain: the extracted
// requirements, the matched assets, and the routed workflow.
type ScenePlan struct {
	Scene        domain.SceneDescriptor
	Requirements domain.BrandRequirements
	Matches      domain.MatchedAssetSet
	Decision     domain.WorkflowDecision
}

// Pipeline sequences the core services for one scene.
type Pipeline interface {
	// PlanScene runs analyze → match → route for one scene.
	PlanScene(ctx context.Context, scene domain.SceneDescriptor) (ScenePlan, error)
}
