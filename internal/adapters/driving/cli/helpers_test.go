package cli

import (
	"github.com/custodia-labs/scenekit/internal/adapters/driven/assetstore/memory"
	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/services"
)

// setupTestServices wires the command package against an in-memory asset
// store so commands run without touching the filesystem. The returned
// cleanup restores the previous wiring.
func setupTestServices() func() {
	prevAnalyzer := analyzerService
	prevMatcher := matcherService
	prevRouter := routerService
	prevPipeline := pipelineService
	prevPlacement := placementService
	prevStore := assetStore
	prevWired := servicesWired

	store := memory.NewStore()
	store.Add(
		domain.BrandAsset{
			ID:         "p1",
			URL:        "https://assets.test/serum.png",
			Name:       "Night Serum",
			Category:   domain.CategoryProduct,
			AssetType:  "product-hero",
			EntityName: "Herbalix",
			Keywords:   []string{"serum", "bottle"},
		},
		domain.BrandAsset{
			ID:        "l1",
			URL:       "https://assets.test/logo.svg",
			Name:      "Herbalix Primary Logo",
			Category:  domain.CategoryLogo,
			AssetType: "logo-primary-color",
			IsDefault: true,
		},
	)

	cfg := domain.DefaultEngineConfig()
	assetStore = store
	analyzerService = services.NewRequirementAnalyzer([]string{"Night Serum"}, []string{"Herbalix"})
	taxonomy := services.NewTaxonomy(services.DefaultTaxonomy())
	matcherService = services.NewAssetMatcher(store, taxonomy, cfg.Weights)
	routerService = services.NewWorkflowRouter()
	pipelineService = services.NewScenePipeline(analyzerService, matcherService, routerService)
	placementService = services.NewOverlayPlacementEngine(cfg.Placement)
	servicesWired = true

	return func() {
		analyzerService = prevAnalyzer
		matcherService = prevMatcher
		routerService = prevRouter
		pipelineService = prevPipeline
		placementService = prevPlacement
		assetStore = prevStore
		servicesWired = prevWired
	}
}
