package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

var (
	placeDuration float64
	placeFPS      int
)

var placeCmd = &cobra.Command{
	Use:   "place [overlays.yaml]",
	Short: "Position and schedule overlays for a scene",
	Long: `Reads a scene's overlays and frame analysis from a YAML file, scores
the candidate anchor grid for each overlay, and prints the chosen
positions and timing windows after collision resolution.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlace,
}

func init() {
	placeCmd.Flags().Float64Var(&placeDuration, "duration", 10, "scene length in seconds")
	placeCmd.Flags().IntVar(&placeFPS, "fps", 0, "frame rate (0 uses the engine default)")
	rootCmd.AddCommand(placeCmd)
}

// placeFile is the YAML shape of a placement request.
type placeFile struct {
	Overlays []struct {
		ID       string `yaml:"id"`
		Text     string `yaml:"text"`
		AssetURL string `yaml:"asset_url"`
		Type     string `yaml:"type"`
	} `yaml:"overlays"`
	Frame struct {
		Faces       []placeRegion `yaml:"faces"`
		BusyRegions []placeRegion `yaml:"busy_regions"`
		SafeAnchors []string      `yaml:"safe_anchors"`
	} `yaml:"frame"`
}

type placeRegion struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func runPlace(cmd *cobra.Command, args []string) error {
	if placementService == nil {
		return errors.New("placement engine not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read overlays file: %w", err)
	}
	var f placeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse overlays file: %w", err)
	}

	overlays := make([]domain.Overlay, 0, len(f.Overlays))
	for _, o := range f.Overlays {
		overlays = append(overlays, domain.Overlay{
			ID:       o.ID,
			Text:     o.Text,
			AssetURL: o.AssetURL,
			Type:     domain.OverlayType(o.Type),
		})
	}

	frame := domain.FrameAnalysis{}
	for _, r := range f.Frame.Faces {
		frame.Faces = append(frame.Faces, domain.Region(r))
	}
	for _, r := range f.Frame.BusyRegions {
		frame.BusyRegions = append(frame.BusyRegions, domain.Region(r))
	}
	for _, a := range f.Frame.SafeAnchors {
		frame.SafeAnchors = append(frame.SafeAnchors, domain.Anchor(a))
	}

	report := placementService.CalculatePlacements(overlays, frame, placeDuration, placeFPS)

	if len(report.Placements) == 0 {
		cmd.Println("No overlays placed.")
	}
	for _, p := range report.Placements {
		label := p.Overlay.Text
		if label == "" {
			label = p.Overlay.AssetURL
		}
		cmd.Printf("%s %q\n", p.Overlay.Type, label)
		cmd.Printf("  anchor: %s (%.0f,%.0f)  score: %d\n", p.Anchor, p.Position.X, p.Position.Y, p.Score)
		cmd.Printf("  frames: %d-%d  animation: %s/%s\n",
			p.Timing.StartFrame, p.Timing.EndFrame, p.Animation.Enter, p.Animation.Exit)
		if p.Reason != "" {
			cmd.Printf("  %s\n", p.Reason)
		}
	}
	cmd.Printf("\n%d unique, %d placed, %d skipped\n",
		report.Unique, len(report.Placements), report.Skipped)
	return nil
}
