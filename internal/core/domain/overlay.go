package domain

// OverlayType classifies an ephemeral overlay, which drives preferred
// positions, timing windows and animation styles.
type OverlayType string

const (
	// OverlayCaption is narration text, preferring lower regions.
	OverlayCaption OverlayType = "caption"
	// OverlayTitle is a scene title, appearing early, center/top.
	OverlayTitle OverlayType = "title"
	// OverlayLowerThird is a name/context strip entering late.
	OverlayLowerThird OverlayType = "lower-third"
	// OverlayCTA is a call-to-action occupying the back half.
	OverlayCTA OverlayType = "cta"
	// OverlayLogo is an ephemeral logo bug.
	OverlayLogo OverlayType = "logo"
)

// Overlay is one text or logo element requesting placement on a scene.
type Overlay struct {
	// ID identifies the overlay within the scene.
	ID string

	// Text is the overlay text, empty for asset overlays.
	Text string

	// AssetURL is the image source for logo overlays.
	AssetURL string

	// Type classifies the overlay.
	Type OverlayType
}

// Key returns the identity used for duplicate removal: two overlays with
// the same text and type collapse to one.
func (o Overlay) Key() string {
	return string(o.Type) + "\x00" + o.Text + "\x00" + o.AssetURL
}

// Region is a screen rectangle in canvas percentages (0-100).
type Region struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Expand grows the region by pct percent of its own size on every side,
// clamped to the canvas.
func (r Region) Expand(pct float64) Region {
	dx := r.Width * pct / 100
	dy := r.Height * pct / 100
	out := Region{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
	if out.X < 0 {
		out.Width += out.X
		out.X = 0
	}
	if out.Y < 0 {
		out.Height += out.Y
		out.Y = 0
	}
	if out.X+out.Width > 100 {
		out.Width = 100 - out.X
	}
	if out.Y+out.Height > 100 {
		out.Height = 100 - out.Y
	}
	return out
}

// Contains reports whether a point (in percentages) lies inside.
func (r Region) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsBottom reports whether the region sits in the lower part of the
// frame (vertical center at or below 60%).
func (r Region) IsBottom() bool {
	return r.Y+r.Height/2 >= 60
}

// FrameAnalysis carries the upstream frame analysis for one scene:
// detected faces, anchors declared safe, and visually busy regions.
type FrameAnalysis struct {
	// Faces are detected face boxes. Candidates overlapping a face
	// (expanded by the configured padding) are heavily penalised.
	Faces []Region

	// SafeAnchors are candidate anchors the analysis flagged as safe.
	SafeAnchors []Anchor

	// BusyRegions are visually cluttered areas to avoid.
	BusyRegions []Region
}

// Timing is an overlay's visibility window in frames.
type Timing struct {
	StartFrame int
	EndFrame   int
}

// Overlaps reports whether two frame windows intersect.
func (t Timing) Overlaps(o Timing) bool {
	return t.StartFrame < o.EndFrame && o.StartFrame < t.EndFrame
}

// Animation describes how an overlay enters and exits.
type Animation struct {
	Enter       string
	Exit        string
	DurationSec float64
}

// OverlayPlacement is one accepted overlay with its chosen position,
// timing and animation.
type OverlayPlacement struct {
	// ID is the placement identifier.
	ID string

	// Overlay is the placed overlay.
	Overlay Overlay

	// Anchor is the chosen grid anchor.
	Anchor Anchor

	// Position is the anchor's point in canvas percentages.
	Position Position

	// Timing is the visibility window, after collision resolution.
	Timing Timing

	// Animation is the enter/exit style keyed by overlay type.
	Animation Animation

	// Score is the winning candidate score.
	Score int

	// Reason explains the placement in human-readable form.
	Reason string
}

// PlacementReport is the outcome of placing all overlays for one scene.
// Rejected overlays are counted, not stored.
type PlacementReport struct {
	// Placements are the accepted overlays.
	Placements []OverlayPlacement

	// Unique is the overlay count after duplicate removal.
	Unique int

	// Skipped counts overlays rejected because no candidate scored
	// above the threshold.
	Skipped int
}
