package services

import (
	"math"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

// Pure layout math for the composition engine. Everything here operates
// on already-known intrinsic sizes; no I/O, deterministic, unit testable
// with fixtures.

// logoWidthFraction maps a logo size to its canvas-width fraction.
func logoWidthFraction(size domain.LogoSize) float64 {
	switch size {
	case domain.LogoSmall:
		return 0.08
	case domain.LogoLarge:
		return 0.18
	default: // medium
		return 0.12
	}
}

// canvasSize returns the effective output dimensions.
func canvasSize(out domain.OutputSpec) (int, int) {
	w, h := out.Width, out.Height
	if w <= 0 {
		w = 1920
	}
	if h <= 0 {
		h = 1080
	}
	return w, h
}

// coverFit computes the scaled size and crop offset that fills dstW×dstH
// completely from a srcW×srcH source, cropping overflow symmetrically.
func coverFit(srcW, srcH, dstW, dstH int) (scaledW, scaledH, cropX, cropY int) {
	if srcW <= 0 || srcH <= 0 {
		return dstW, dstH, 0, 0
	}
	scale := math.Max(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	scaledW = int(math.Round(float64(srcW) * scale))
	scaledH = int(math.Round(float64(srcH) * scale))
	cropX = (scaledW - dstW) / 2
	cropY = (scaledH - dstH) / 2
	return scaledW, scaledH, cropX, cropY
}

// clampToMax applies the placement scale and then clamps the result to
// the max width/height percentages of the canvas, preserving aspect
// ratio. Whichever dimension is tighter wins; the other is recomputed
// from the ratio.
func clampToMax(intrinsicW, intrinsicH int, scale, maxWPct, maxHPct float64, canvasW, canvasH int) (int, int) {
	if intrinsicW <= 0 || intrinsicH <= 0 {
		return 0, 0
	}
	if scale <= 0 {
		scale = 1.0
	}
	w := float64(intrinsicW) * scale
	h := float64(intrinsicH) * scale

	if maxWPct <= 0 {
		maxWPct = 100
	}
	if maxHPct <= 0 {
		maxHPct = 100
	}
	maxW := float64(canvasW) * maxWPct / 100
	maxH := float64(canvasH) * maxHPct / 100

	ratio := h / w
	if w > maxW {
		w = maxW
		h = w * ratio
	}
	if h > maxH {
		h = maxH
		w = h / ratio
	}
	return int(math.Round(w)), int(math.Round(h))
}

// productOrigin resolves a product placement's pixel origin. Horizontal
// placement is always centered on Position.X; the anchor decides whether
// Position.Y marks the top edge, the bottom edge, or the center.
func productOrigin(p domain.ProductPlacement, w, h, canvasW, canvasH int) (int, int) {
	x := int(math.Round(float64(canvasW)*p.Position.X/100)) - w/2
	yRef := int(math.Round(float64(canvasH) * p.Position.Y / 100))

	var y int
	switch p.Anchor {
	case domain.AnchorTopCenter:
		y = yRef
	case domain.AnchorBottomCenter:
		y = yRef - h
	default: // center
		y = yRef - h/2
	}
	return x, y
}

// shadowGeometry derives the offset and canvas padding for a synthesized
// drop shadow. The blurred copy is offset by round(blur*0.5) and the
// working canvas grows by blur+offset on every side so the blur never
// clips.
func shadowGeometry(spec domain.ShadowSpec) (offset, padding int) {
	offset = int(math.Round(float64(spec.Blur) * 0.5))
	padding = spec.Blur + offset
	return offset, padding
}

// logoBounds resolves a logo overlay to pixel bounds using the anchor
// table, offset by margin pixels from the canvas edge.
func logoBounds(anchor Anchor, logoW, logoH, canvasW, canvasH, margin int) domain.Bounds {
	left := margin
	right := canvasW - margin - logoW
	top := margin
	bottom := canvasH - margin - logoH
	centerX := (canvasW - logoW) / 2
	centerY := (canvasH - logoH) / 2
	lowerThirdY := canvasH*2/3 - logoH/2

	var x, y int
	switch anchor {
	case domain.AnchorTopLeft:
		x, y = left, top
	case domain.AnchorTopCenter:
		x, y = centerX, top
	case domain.AnchorTopRight:
		x, y = right, top
	case domain.AnchorCenterLeft:
		x, y = left, centerY
	case domain.AnchorCenterRight:
		x, y = right, centerY
	case domain.AnchorBottomLeft:
		x, y = left, bottom
	case domain.AnchorBottomCenter:
		x, y = centerX, bottom
	case domain.AnchorBottomRight:
		x, y = right, bottom
	case domain.AnchorLowerThird:
		x, y = centerX, lowerThirdY
	case domain.AnchorLowerThirdRight:
		x, y = right, lowerThirdY
	default: // center
		x, y = centerX, centerY
	}
	return domain.Bounds{X: x, Y: y, Width: logoW, Height: logoH}
}

// Anchor is re-exported for layout helpers.
type Anchor = domain.Anchor

// logoRelocationOrder lists the anchors tried when the requested logo
// position collides with a product layer, nearest intent first.
func logoRelocationOrder(requested Anchor) []Anchor {
	order := []Anchor{
		requested,
		domain.AnchorTopRight,
		domain.AnchorTopLeft,
		domain.AnchorBottomRight,
		domain.AnchorBottomLeft,
		domain.AnchorTopCenter,
		domain.AnchorBottomCenter,
		domain.AnchorCenterLeft,
		domain.AnchorCenterRight,
		domain.AnchorLowerThirdRight,
	}
	seen := make(map[Anchor]bool, len(order))
	out := order[:0]
	for _, a := range order {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// placeLogoAvoiding finds logo bounds that avoid the given obstacle
// rectangles, trying the requested anchor first and then the relocation
// order. When every anchor intersects, the requested anchor's bounds are
// returned with resolved=false so the caller can flag the overlap
// instead of silently accepting it.
func placeLogoAvoiding(requested Anchor, logoW, logoH, canvasW, canvasH, margin int, obstacles []domain.Bounds) (domain.Bounds, Anchor, bool) {
	for _, anchor := range logoRelocationOrder(requested) {
		b := logoBounds(anchor, logoW, logoH, canvasW, canvasH, margin)
		if !intersectsAny(b, obstacles) {
			return b, anchor, true
		}
	}
	return logoBounds(requested, logoW, logoH, canvasW, canvasH, margin), requested, false
}

func intersectsAny(b domain.Bounds, obstacles []domain.Bounds) bool {
	for _, o := range obstacles {
		if b.Intersects(o) {
			return true
		}
	}
	return false
}

// watermarkOpacity caps a logo's opacity at the watermark ceiling when
// the logo is a watermark, regardless of the requested value.
func watermarkOpacity(logo domain.LogoOverlay, ceiling float64) float64 {
	op := logo.Opacity
	if op <= 0 || op > 1 {
		op = 1
	}
	if logo.LogoType == domain.LogoWatermark && op > ceiling {
		op = ceiling
	}
	return op
}

// anchorPoint maps a grid anchor to its canvas-percentage position for
// overlay placement.
func anchorPoint(anchor Anchor) domain.Position {
	switch anchor {
	case domain.AnchorTopLeft:
		return domain.Position{X: 15, Y: 12}
	case domain.AnchorTopCenter:
		return domain.Position{X: 50, Y: 12}
	case domain.AnchorTopRight:
		return domain.Position{X: 85, Y: 12}
	case domain.AnchorCenterLeft:
		return domain.Position{X: 15, Y: 50}
	case domain.AnchorCenterRight:
		return domain.Position{X: 85, Y: 50}
	case domain.AnchorBottomLeft:
		return domain.Position{X: 15, Y: 85}
	case domain.AnchorBottomCenter:
		return domain.Position{X: 50, Y: 85}
	case domain.AnchorBottomRight:
		return domain.Position{X: 85, Y: 85}
	case domain.AnchorLowerThird:
		return domain.Position{X: 50, Y: 75}
	default: // center
		return domain.Position{X: 50, Y: 50}
	}
}
