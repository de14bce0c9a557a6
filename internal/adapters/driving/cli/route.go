package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

var (
	routeNarration string
	routeDuration  float64
	routeFPS       int
	routeSceneType string
	routeOutput    string
	routeJSON      bool
)

var routeCmd = &cobra.Command{
	Use:   "route [visual-direction]",
	Short: "Plan the production workflow for a scene",
	Long: `Runs the full planning chain for one scene: requirement extraction,
asset matching, and workflow routing. Prints the selected workflow path,
its steps, and the decision trail.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().StringVar(&routeNarration, "narration", "", "voiceover text spoken during the scene")
	routeCmd.Flags().Float64Var(&routeDuration, "duration", 5, "scene length in seconds")
	routeCmd.Flags().IntVar(&routeFPS, "fps", 0, "frame rate (0 uses the engine default)")
	routeCmd.Flags().StringVar(&routeSceneType, "scene-type", "", "scene type hint, overrides classification")
	routeCmd.Flags().StringVar(&routeOutput, "output", "video", "output kind: image or video")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "output the plan as JSON")
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline not configured")
	}

	scene := domain.SceneDescriptor{
		ID:              "cli",
		VisualDirection: args[0],
		Narration:       routeNarration,
		DurationSeconds: routeDuration,
		FrameRate:       routeFPS,
		SceneType:       domain.SceneType(routeSceneType),
		Output:          domain.OutputType(routeOutput),
	}

	plan, err := pipelineService.PlanScene(context.Background(), scene)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	if routeJSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Workflow: %s (quality: %s, cost x%.1f)\n",
		plan.Decision.Path, plan.Decision.Quality, plan.Decision.CostMultiplier)
	cmd.Println("\nSteps:")
	for i, step := range plan.Decision.Steps {
		cmd.Printf("  %d. %s\n", i+1, step.Name)
	}
	if len(plan.Decision.Reasons) > 0 {
		cmd.Println("\nReasons:")
		for _, r := range plan.Decision.Reasons {
			cmd.Printf("  - %s\n", r)
		}
	}
	cmd.Printf("\nMatched assets: %d products, %d logos, %d locations\n",
		len(plan.Matches.Products), len(plan.Matches.Logos), len(plan.Matches.Locations))
	return nil
}
