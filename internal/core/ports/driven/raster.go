package driven

import "image"

// FitMode selects how Resize maps the source onto the target size.
type FitMode string

const (
	// FitCover fills the target completely, cropping overflow.
	FitCover FitMode = "cover"
	// FitInside fits the whole source within the target, aspect
	// preserving; the result may be smaller than the target on one axis.
	FitInside FitMode = "inside"
)

// Layer is one image positioned at a top-left pixel offset for
// compositing.
type Layer struct {
	Image   image.Image
	X       int
	Y       int
	Opacity float64
}

// Rasterizer provides the raster primitives the composition engine needs.
// Implementations operate purely in memory.
type Rasterizer interface {
	// Decode parses encoded image bytes.
	Decode(data []byte) (image.Image, error)

	// Encode serialises an image ("png" or "jpeg"; quality applies to
	// jpeg only).
	Encode(img image.Image, format string, quality int) ([]byte, error)

	// Resize scales the source to the given size under the fit mode.
	Resize(src image.Image, width, height int, mode FitMode) image.Image

	// Composite stacks layers onto a base, in slice order.
	Composite(base image.Image, layers []Layer) image.Image

	// Blur applies a box blur with the given radius.
	Blur(src image.Image, radius int) image.Image

	// Greyscale converts the source to grey, preserving alpha.
	Greyscale(src image.Image) image.Image

	// Rotate rotates counter-clockwise by the given degrees.
	Rotate(src image.Image, degrees float64) image.Image

	// Flip mirrors the source horizontally and/or vertically.
	Flip(src image.Image, horizontal, vertical bool) image.Image
}
