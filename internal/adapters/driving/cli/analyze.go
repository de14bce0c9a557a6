package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	analyzeNarration string
	analyzeJSON      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [visual-direction]",
	Short: "Extract brand requirements from scene text",
	Long: `Classifies a scene's visual direction (and optional narration) into
structured brand requirements: whether a product or logo is called for,
scene type, visibility levels, and a confidence score.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeNarration, "narration", "", "voiceover text spoken during the scene")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output requirements as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzerService == nil {
		return errors.New("analyzer not configured")
	}

	req := analyzerService.Analyze(args[0], analyzeNarration)

	if analyzeJSON {
		data, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal requirements: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Scene type:       %s\n", req.SceneType)
	cmd.Printf("Confidence:       %.2f\n", req.Confidence)
	cmd.Printf("Needs brand assets: %v\n", req.RequiresBrandAssets)
	cmd.Printf("Product mentioned:  %v (visibility: %s)\n", req.ProductMentioned, req.ProductVisibility)
	cmd.Printf("Logo required:      %v", req.LogoRequired)
	if req.LogoType != "" {
		cmd.Printf(" (variant: %s, visibility: %s)", req.LogoType, req.BrandingVisibility)
	}
	cmd.Println()
	if len(req.ProductNames) > 0 {
		cmd.Printf("Products:         %s\n", strings.Join(req.ProductNames, ", "))
	}
	if len(req.Signals) > 0 {
		cmd.Printf("Signals:          %s\n", strings.Join(req.Signals, ", "))
	}
	return nil
}
