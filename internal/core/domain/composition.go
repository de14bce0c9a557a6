package domain

import "image"

// Anchor is the reference corner/edge/center used to interpret a
// percentage position as a pixel origin.
type Anchor string

const (
	AnchorTopLeft         Anchor = "top-left"
	AnchorTopCenter       Anchor = "top-center"
	AnchorTopRight        Anchor = "top-right"
	AnchorCenterLeft      Anchor = "center-left"
	AnchorCenter          Anchor = "center"
	AnchorCenterRight     Anchor = "center-right"
	AnchorBottomLeft      Anchor = "bottom-left"
	AnchorBottomCenter    Anchor = "bottom-center"
	AnchorBottomRight     Anchor = "bottom-right"
	AnchorLowerThird      Anchor = "lower-third"
	AnchorLowerThirdRight Anchor = "lower-third-right"
)

// Position is a point expressed as percentages of the canvas size.
type Position struct {
	// X is the horizontal position, 0-100.
	X float64
	// Y is the vertical position, 0-100.
	Y float64
}

// LogoSize selects the relative width of a composited logo.
type LogoSize string

const (
	// LogoSmall renders at 8% of canvas width.
	LogoSmall LogoSize = "small"
	// LogoMedium renders at 12% of canvas width.
	LogoMedium LogoSize = "medium"
	// LogoLarge renders at 18% of canvas width.
	LogoLarge LogoSize = "large"
)

// ShadowSpec describes a synthesized drop shadow beneath a product layer.
type ShadowSpec struct {
	// Blur is the blur radius in pixels. The shadow offset is
	// round(Blur * 0.5) on both axes.
	Blur int

	// Opacity is the shadow opacity in [0,1].
	Opacity float64
}

// ProductPlacement positions one product photo on the canvas.
type ProductPlacement struct {
	// AssetID references the product asset.
	AssetID string

	// SourceURL is where the product image bytes live.
	SourceURL string

	// Position is the placement point in canvas percentages.
	Position Position

	// Anchor resolves the vertical origin: top-center places the top
	// edge at Position.Y, bottom-center the bottom edge, center the
	// middle. Horizontal placement is always centered on Position.X.
	Anchor Anchor

	// Scale multiplies the intrinsic size before clamping.
	Scale float64

	// MaxWidthPct / MaxHeightPct clamp the scaled size to a fraction
	// of the canvas (0-100), aspect ratio preserving.
	MaxWidthPct  float64
	MaxHeightPct float64

	// Shadow, when set, synthesizes a drop shadow under the product.
	Shadow *ShadowSpec

	// ZIndex is the draw order; higher draws later (on top).
	ZIndex int

	// RotationDeg rotates the layer counter-clockwise, in degrees.
	RotationDeg float64

	// FlipH / FlipV mirror the layer before placement.
	FlipH bool
	FlipV bool
}

// LogoOverlay positions a logo on the composited frame.
type LogoOverlay struct {
	// AssetID references the logo asset.
	AssetID string

	// SourceURL is where the logo image bytes live.
	SourceURL string

	// Position is one of the nine edge/corner/center anchors, or a
	// lower-third variant.
	Position Anchor

	// Size selects the relative logo width.
	Size LogoSize

	// Opacity is the requested opacity in [0,1]. Watermark logos are
	// ceiled at 0.5 regardless of the requested value.
	Opacity float64

	// LogoType distinguishes watermark logos for the opacity ceiling.
	LogoType LogoType
}

// Environment describes the generated background the layers sit on.
type Environment struct {
	Prompt   string
	Style    string
	Lighting string
	Palette  []string
}

// OutputSpec fixes the composited frame dimensions and encoding.
type OutputSpec struct {
	Width   int
	Height  int
	Format  string
	Quality int
}

// CompositionRequest is the full input for one compositing run.
type CompositionRequest struct {
	// SceneID ties the composition to its scene.
	SceneID string

	// Environment describes the background. Informational here; the
	// generator collaborator has already produced BackgroundURL.
	Environment Environment

	// BackgroundURL is the background image source. Fetch failure is
	// fatal for the whole composition.
	BackgroundURL string

	// Products are the product layers, composited in ZIndex order.
	Products []ProductPlacement

	// Logo is the optional logo overlay, drawn above all products.
	Logo *LogoOverlay

	// Output fixes canvas size and encoding.
	Output OutputSpec
}

// Bounds is a computed pixel rectangle on the output canvas.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Rect converts the bounds to a stdlib image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Intersects reports whether two bounds overlap.
func (b Bounds) Intersects(o Bounds) bool {
	return b.Rect().Overlaps(o.Rect())
}

// LayerBounds records where one layer landed on the canvas. These are the
// ground truth for downstream overlap checks.
type LayerBounds struct {
	// Layer names the layer ("background", "product", "logo", "shadow").
	Layer string

	// AssetID references the source asset, when one exists.
	AssetID string

	// ZIndex is the draw order the layer was composited at.
	ZIndex int

	// Bounds is the computed pixel rectangle.
	Bounds Bounds
}

// UnresolvedOverlap flags a layer pair that still intersects after every
// relocation attempt. The composition succeeds; the caller decides.
type UnresolvedOverlap struct {
	Layer   string
	Against string
	Bounds  Bounds
}

// CompositionResult is the outcome of one compositing run. Failures are
// data, never panics: Success false with Error set means the background
// could not be fetched or the raster stage failed.
type CompositionResult struct {
	// Success is false only for fatal failures (background fetch,
	// raster errors). Dropped layers do not fail the run.
	Success bool

	// ImageURL is the uploaded artifact location. Empty when upload
	// fell back to inline embedding; then DataURI is set.
	ImageURL string

	// DataURI carries the artifact inline when upload failed.
	DataURI string

	// Raster is the composited frame, available to in-process callers.
	Raster image.Image

	// Layers are the computed bounds of every placed layer.
	Layers []LayerBounds

	// SkippedLayers lists asset IDs whose source fetch failed.
	SkippedLayers []string

	// Unresolved lists overlaps that survived relocation.
	Unresolved []UnresolvedOverlap

	// Error describes the fatal failure when Success is false.
	Error string
}
