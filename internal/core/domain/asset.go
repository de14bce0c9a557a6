package domain

import "strings"

// AssetCategory groups brand assets by their role in a scene.
type AssetCategory string

const (
	// CategoryProduct is real product photography.
	CategoryProduct AssetCategory = "product"
	// CategoryLogo is a brand mark in any variant.
	CategoryLogo AssetCategory = "logo"
	// CategoryLocation is branded location/environment photography.
	CategoryLocation AssetCategory = "location"
)

// BrandAsset is a snapshot of a stored brand asset. The repository owns
// the canonical record; the engine only reads snapshots.
type BrandAsset struct {
	// ID is the unique identifier in the repository.
	ID string

	// URL is where the asset bytes live.
	URL string

	// Name is the human-readable asset name.
	Name string

	// Description is free-text metadata.
	Description string

	// AssetType is the declared taxonomy type (e.g. "logo-primary-color").
	// Optional; assets with incomplete metadata carry an empty type and
	// are scored from keywords alone.
	AssetType string

	// Category groups the asset (product, logo, location).
	Category AssetCategory

	// Keywords are matching hints attached by the asset owner.
	Keywords []string

	// Priority is an explicit owner-assigned ranking nudge, >= 0.
	Priority int

	// IsDefault marks the fallback asset for its category.
	IsDefault bool

	// MimeType is the content type of the asset bytes.
	MimeType string

	// EntityType and EntityName identify the owning brand entity.
	EntityType string
	EntityName string
}

// SearchText returns the concatenated lowercase text used for keyword
// scoring when no taxonomy type is declared.
func (a BrandAsset) SearchText() string {
	parts := make([]string, 0, 3+len(a.Keywords))
	parts = append(parts, a.Name, a.Description, a.EntityName)
	parts = append(parts, a.Keywords...)
	return strings.ToLower(strings.Join(parts, " "))
}

// HasTransparency reports whether the asset format supports an alpha
// channel, which composites cleanly over generated backgrounds.
func (a BrandAsset) HasTransparency() bool {
	switch a.MimeType {
	case "image/png", "image/webp", "image/svg+xml":
		return true
	}
	return false
}
