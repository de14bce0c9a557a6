package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

var matchJSON bool

var matchCmd = &cobra.Command{
	Use:   "match [visual-direction]",
	Short: "Match brand assets against scene text",
	Long: `Resolves taxonomy asset types from the visual direction, queries the
asset library, and prints the matches grouped by category, highest
aggregate score first.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output matches as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if matcherService == nil {
		return errors.New("matcher not configured")
	}

	groups := matcherService.FindMatchingBrandAssets(context.Background(), args[0])

	if matchJSON {
		data, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal matches: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputMatchGroups(cmd, groups)
}

func outputMatchGroups(cmd *cobra.Command, groups []domain.CategoryMatches) error {
	if len(groups) == 0 {
		cmd.Println("No matching assets found.")
		return nil
	}

	for _, g := range groups {
		cmd.Printf("%s (score %d):\n", g.Category, g.Score)
		for i := range g.Matches {
			m := &g.Matches[i]
			cmd.Printf("  [%d] %s (%d)\n", i+1, m.Asset.Name, m.Score)
			if m.Reason != "" {
				cmd.Printf("      %s\n", m.Reason)
			}
		}
		cmd.Println()
	}
	return nil
}
