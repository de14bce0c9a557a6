package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scenekit/internal/adapters/driven/assetstore/manifest"
	"github.com/custodia-labs/scenekit/internal/adapters/driven/assetstore/sqlite"
	configfile "github.com/custodia-labs/scenekit/internal/adapters/driven/config/file"
	"github.com/custodia-labs/scenekit/internal/adapters/driven/fetch"
	"github.com/custodia-labs/scenekit/internal/adapters/driven/raster"
	"github.com/custodia-labs/scenekit/internal/adapters/driven/storage/local"
	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
	"github.com/custodia-labs/scenekit/internal/core/ports/driving"
	"github.com/custodia-labs/scenekit/internal/core/services"
	"github.com/custodia-labs/scenekit/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose      bool
	configDir    string
	dataDir      string
	manifestPath string
	artifactsDir string
)

// Services wired by initServices. Commands nil-check the ones they need
// so tests can inject doubles without touching the wiring.
var (
	analyzerService  driving.Analyzer
	matcherService   driving.Matcher
	routerService    driving.Router
	pipelineService  driving.Pipeline
	placementService driving.PlacementEngine
	composerService  driving.Composer
	assetStore       driven.AssetStore
	assetAdmin       assetAdminStore
	engineConfig     domain.EngineConfig
)

var servicesWired bool

// assetAdminStore is the write surface the asset commands need. The
// sqlite store provides it; manifest-backed runs are read-only and
// leave assetAdmin nil.
type assetAdminStore interface {
	Save(ctx context.Context, asset domain.BrandAsset) error
	List(ctx context.Context) ([]domain.BrandAsset, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

var rootCmd = &cobra.Command{
	Use:   "scenekit",
	Short: "Brand-aware scene composition engine",
	Long: `Scenekit extracts brand requirements from scene scripts, matches them
against a brand asset library, routes each scene to a production workflow,
and composites product and logo layers onto backgrounds.`,
	PersistentPreRunE: initServices,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.scenekit)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "asset database directory (default ~/.scenekit/data)")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "YAML asset manifest; overrides the sqlite store")
	rootCmd.PersistentFlags().StringVar(&artifactsDir, "artifacts-dir", "", "composited artifact directory (default ~/.scenekit/artifacts)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	// version and help need no wiring.
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}
	if servicesWired {
		return nil
	}

	src, err := configfile.NewConfigSource(configDir)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	cfg, err := src.Load()
	if err != nil {
		logger.Warn("config load failed: %v (using defaults)", err)
	}
	engineConfig = cfg

	if manifestPath != "" {
		store, err := manifest.NewStore(manifestPath)
		if err != nil {
			return fmt.Errorf("failed to open asset manifest: %w", err)
		}
		assetStore = store
	} else {
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open asset store: %w", err)
		}
		assetStore = store
		assetAdmin = store
	}

	productNames, brandNames := brandVocabulary(context.Background(), assetStore)

	analyzerService = services.NewRequirementAnalyzer(productNames, brandNames)
	taxonomy := services.NewTaxonomy(services.DefaultTaxonomy())
	matcherService = services.NewAssetMatcher(assetStore, taxonomy, cfg.Weights)
	routerService = services.NewWorkflowRouter()
	pipelineService = services.NewScenePipeline(analyzerService, matcherService, routerService)
	placementService = services.NewOverlayPlacementEngine(cfg.Placement)

	blobs, err := local.NewStore(artifactsDir)
	if err != nil {
		return fmt.Errorf("failed to open artifact store: %w", err)
	}
	composerService = services.NewCompositionEngine(fetch.New(), raster.New(), blobs, cfg)

	servicesWired = true
	return nil
}

// brandVocabulary derives the analyzer's product and brand name lists
// from the asset library. A store failure degrades to empty lists; the
// analyzer still classifies from generic signals.
func brandVocabulary(ctx context.Context, store driven.AssetStore) (products, brands []string) {
	assets, err := store.QueryAssets(ctx, driven.AssetFilter{ActiveOnly: true})
	if err != nil {
		logger.Warn("asset vocabulary load failed: %v", err)
		return nil, nil
	}

	seenBrand := make(map[string]bool)
	for _, a := range assets {
		if a.Category == domain.CategoryProduct && a.Name != "" {
			products = append(products, a.Name)
		}
		if a.EntityName != "" && !seenBrand[a.EntityName] {
			seenBrand[a.EntityName] = true
			brands = append(brands, a.EntityName)
		}
	}
	return products, brands
}
