package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

var composeCmd = &cobra.Command{
	Use:   "compose [request.yaml]",
	Short: "Composite product and logo layers onto a background",
	Long: `Reads a composition request from a YAML file, fetches the background
and layer images, composites them, and stores the result in the artifact
directory. Missing product layers are skipped; a missing background fails
the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)
}

// composeFile is the YAML shape of a composition request.
type composeFile struct {
	SceneID    string `yaml:"scene_id"`
	Background string `yaml:"background"`
	Products   []struct {
		AssetID   string  `yaml:"asset_id"`
		URL       string  `yaml:"url"`
		X         float64 `yaml:"x"`
		Y         float64 `yaml:"y"`
		Anchor    string  `yaml:"anchor"`
		Scale     float64 `yaml:"scale"`
		MaxWidth  float64 `yaml:"max_width_pct"`
		MaxHeight float64 `yaml:"max_height_pct"`
		ZIndex    int     `yaml:"z_index"`
		Rotation  float64 `yaml:"rotation_deg"`
		FlipH     bool    `yaml:"flip_h"`
		FlipV     bool    `yaml:"flip_v"`
		Shadow    *struct {
			Blur    int     `yaml:"blur"`
			Opacity float64 `yaml:"opacity"`
		} `yaml:"shadow"`
	} `yaml:"products"`
	Logo *struct {
		AssetID  string  `yaml:"asset_id"`
		URL      string  `yaml:"url"`
		Position string  `yaml:"position"`
		Size     string  `yaml:"size"`
		Opacity  float64 `yaml:"opacity"`
		Type     string  `yaml:"type"`
	} `yaml:"logo"`
	Output struct {
		Width   int    `yaml:"width"`
		Height  int    `yaml:"height"`
		Format  string `yaml:"format"`
		Quality int    `yaml:"quality"`
	} `yaml:"output"`
}

func runCompose(cmd *cobra.Command, args []string) error {
	if composerService == nil {
		return errors.New("composer not configured")
	}

	req, err := loadComposeRequest(args[0])
	if err != nil {
		return err
	}

	result := composerService.Compose(cmd.Context(), req)
	if !result.Success {
		return fmt.Errorf("composition failed: %s", result.Error)
	}

	if result.ImageURL != "" {
		cmd.Printf("Composited: %s\n", result.ImageURL)
	} else {
		cmd.Printf("Composited inline (%d bytes as data URI)\n", len(result.DataURI))
	}

	cmd.Println("\nLayers:")
	for _, l := range result.Layers {
		cmd.Printf("  %-10s %s  %dx%d at (%d,%d)\n",
			l.Layer, l.AssetID, l.Bounds.Width, l.Bounds.Height, l.Bounds.X, l.Bounds.Y)
	}
	for _, id := range result.SkippedLayers {
		cmd.Printf("  skipped    %s (fetch failed)\n", id)
	}
	for _, u := range result.Unresolved {
		cmd.Printf("  unresolved overlap: %s against %s\n", u.Layer, u.Against)
	}
	return nil
}

func loadComposeRequest(path string) (domain.CompositionRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.CompositionRequest{}, fmt.Errorf("failed to read request file: %w", err)
	}

	var f composeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.CompositionRequest{}, fmt.Errorf("failed to parse request file: %w", err)
	}

	req := domain.CompositionRequest{
		SceneID:       f.SceneID,
		BackgroundURL: f.Background,
		Output: domain.OutputSpec{
			Width:   f.Output.Width,
			Height:  f.Output.Height,
			Format:  f.Output.Format,
			Quality: f.Output.Quality,
		},
	}

	for _, p := range f.Products {
		placement := domain.ProductPlacement{
			AssetID:      p.AssetID,
			SourceURL:    p.URL,
			Position:     domain.Position{X: p.X, Y: p.Y},
			Anchor:       domain.Anchor(p.Anchor),
			Scale:        p.Scale,
			MaxWidthPct:  p.MaxWidth,
			MaxHeightPct: p.MaxHeight,
			ZIndex:       p.ZIndex,
			RotationDeg:  p.Rotation,
			FlipH:        p.FlipH,
			FlipV:        p.FlipV,
		}
		if p.Shadow != nil {
			placement.Shadow = &domain.ShadowSpec{Blur: p.Shadow.Blur, Opacity: p.Shadow.Opacity}
		}
		req.Products = append(req.Products, placement)
	}

	if f.Logo != nil {
		req.Logo = &domain.LogoOverlay{
			AssetID:   f.Logo.AssetID,
			SourceURL: f.Logo.URL,
			Position:  domain.Anchor(f.Logo.Position),
			Size:      domain.LogoSize(f.Logo.Size),
			Opacity:   f.Logo.Opacity,
			LogoType:  domain.LogoType(f.Logo.Type),
		}
	}
	return req, nil
}
