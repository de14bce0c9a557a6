package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage the brand asset library",
	Long:  `List, register, retire, or remove brand assets in the sqlite library.`,
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered assets",
	RunE:  runAssetList,
}

var assetAddCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Register a brand asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetAdd,
}

var assetDeactivateCmd = &cobra.Command{
	Use:   "deactivate [asset-id]",
	Short: "Retire an asset without removing its record",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetDeactivate,
}

var assetDeleteCmd = &cobra.Command{
	Use:   "delete [asset-id]",
	Short: "Remove an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetDelete,
}

// Flags for asset add.
var (
	assetID         string
	assetName       string
	assetDesc       string
	assetType       string
	assetCategory   string
	assetKeywords   []string
	assetPriority   int
	assetDefault    bool
	assetMimeType   string
	assetEntity     string
	assetEntityType string
)

func init() {
	assetAddCmd.Flags().StringVar(&assetID, "id", "", "asset ID (generated when empty)")
	assetAddCmd.Flags().StringVar(&assetName, "name", "", "human-readable asset name")
	assetAddCmd.Flags().StringVar(&assetDesc, "description", "", "free-text description")
	assetAddCmd.Flags().StringVar(&assetType, "type", "", "taxonomy type, e.g. logo-primary-color")
	assetAddCmd.Flags().StringVar(&assetCategory, "category", "product", "asset category: product, logo, or location")
	assetAddCmd.Flags().StringSliceVar(&assetKeywords, "keywords", nil, "matching keywords")
	assetAddCmd.Flags().IntVar(&assetPriority, "priority", 0, "owner-assigned ranking nudge")
	assetAddCmd.Flags().BoolVar(&assetDefault, "default", false, "mark as the category fallback asset")
	assetAddCmd.Flags().StringVar(&assetMimeType, "mime-type", "", "content type of the asset bytes")
	assetAddCmd.Flags().StringVar(&assetEntity, "entity", "", "owning brand entity name")
	assetAddCmd.Flags().StringVar(&assetEntityType, "entity-type", "", "owning brand entity type")

	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetDeactivateCmd)
	assetCmd.AddCommand(assetDeleteCmd)
	rootCmd.AddCommand(assetCmd)
}

func runAssetList(cmd *cobra.Command, _ []string) error {
	if assetAdmin == nil {
		return errors.New("asset management requires the sqlite store")
	}

	assets, err := assetAdmin.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}

	if len(assets) == 0 {
		cmd.Println("No assets registered.")
		return nil
	}

	for i := range assets {
		a := &assets[i]
		cmd.Printf("%s  [%s]  %s\n", a.ID, a.Category, a.Name)
		if a.AssetType != "" {
			cmd.Printf("    Type:     %s\n", a.AssetType)
		}
		cmd.Printf("    URL:      %s\n", a.URL)
		if len(a.Keywords) > 0 {
			cmd.Printf("    Keywords: %s\n", strings.Join(a.Keywords, ", "))
		}
		if a.IsDefault {
			cmd.Println("    Default for its category")
		}
	}
	cmd.Printf("\nTotal: %d assets\n", len(assets))
	return nil
}

func runAssetAdd(cmd *cobra.Command, args []string) error {
	if assetAdmin == nil {
		return errors.New("asset management requires the sqlite store")
	}

	asset := domain.BrandAsset{
		ID:          assetID,
		URL:         args[0],
		Name:        assetName,
		Description: assetDesc,
		AssetType:   assetType,
		Category:    domain.AssetCategory(assetCategory),
		Keywords:    assetKeywords,
		Priority:    assetPriority,
		IsDefault:   assetDefault,
		MimeType:    assetMimeType,
		EntityType:  assetEntityType,
		EntityName:  assetEntity,
	}
	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}

	if err := assetAdmin.Save(context.Background(), asset); err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}

	cmd.Printf("Registered asset: %s\n", asset.ID)
	return nil
}

func runAssetDeactivate(cmd *cobra.Command, args []string) error {
	if assetAdmin == nil {
		return errors.New("asset management requires the sqlite store")
	}

	if err := assetAdmin.Deactivate(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to deactivate asset: %w", err)
	}

	cmd.Printf("Deactivated asset: %s\n", args[0])
	return nil
}

func runAssetDelete(cmd *cobra.Command, args []string) error {
	if assetAdmin == nil {
		return errors.New("asset management requires the sqlite store")
	}

	if err := assetAdmin.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	cmd.Printf("Deleted asset: %s\n", args[0])
	return nil
}
