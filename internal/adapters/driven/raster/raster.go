// Package raster implements the Rasterizer port on the standard image
// types, with golang.org/x/image/draw scalers for resampling. All
// operations are pure in-memory transforms; nothing here touches disk or
// network.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

// Ensure Engine implements the port.
var _ driven.Rasterizer = (*Engine)(nil)

// Engine is the x/image-backed rasterizer.
type Engine struct {
	// scaler performs the resampling. CatmullRom is slow but sharp,
	// which matters for product photography.
	scaler xdraw.Scaler
}

// New creates a rasterizer with the default CatmullRom scaler.
func New() *Engine {
	return &Engine{scaler: xdraw.CatmullRom}
}

// Decode parses encoded PNG or JPEG bytes.
func (e *Engine) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Encode serialises an image. Quality applies to jpeg only; zero means
// the encoder default of 90.
func (e *Engine) Encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png", "":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case "jpg", "jpeg":
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("encode: unsupported format %q", format)
	}
	return buf.Bytes(), nil
}

// Resize scales the source under the fit mode. FitCover fills the
// target exactly, cropping overflow symmetrically; FitInside returns an
// image no larger than the target on either axis.
func (e *Engine) Resize(src image.Image, width, height int, mode driven.FitMode) image.Image {
	sb := src.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()
	if srcW <= 0 || srcH <= 0 || width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	}

	if mode == driven.FitCover {
		scale := math.Max(float64(width)/float64(srcW), float64(height)/float64(srcH))
		scaledW := int(math.Round(float64(srcW) * scale))
		scaledH := int(math.Round(float64(srcH) * scale))
		cropX := (scaledW - width) / 2
		cropY := (scaledH - height) / 2

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		// Draw the scaled image shifted by the crop so the overflow
		// falls outside the destination.
		dr := image.Rect(-cropX, -cropY, scaledW-cropX, scaledH-cropY)
		e.scaler.Scale(dst, dr, src, sb, xdraw.Over, nil)
		return dst
	}

	// inside
	scale := math.Min(float64(width)/float64(srcW), float64(height)/float64(srcH))
	w := int(math.Round(float64(srcW) * scale))
	h := int(math.Round(float64(srcH) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	e.scaler.Scale(dst, dst.Bounds(), src, sb, xdraw.Over, nil)
	return dst
}

// Composite stacks layers onto a copy of the base, in slice order.
// Layer opacity is applied through a uniform alpha mask.
func (e *Engine) Composite(base image.Image, layers []driven.Layer) image.Image {
	bb := base.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	draw.Draw(out, out.Bounds(), base, bb.Min, draw.Src)

	for _, layer := range layers {
		if layer.Image == nil {
			continue
		}
		lb := layer.Image.Bounds()
		target := image.Rect(layer.X, layer.Y, layer.X+lb.Dx(), layer.Y+lb.Dy())

		opacity := layer.Opacity
		if opacity <= 0 || opacity > 1 {
			opacity = 1
		}
		var mask image.Image
		if opacity < 1 {
			mask = image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 255))})
		}
		draw.DrawMask(out, target, layer.Image, lb.Min, mask, image.Point{}, draw.Over)
	}
	return out
}

// Blur applies a two-pass box blur with the given radius.
func (e *Engine) Blur(src image.Image, radius int) image.Image {
	if radius <= 0 {
		return src
	}
	rgba := toRGBA(src)
	horizontal := boxPass(rgba, radius, true)
	return boxPass(horizontal, radius, false)
}

// boxPass averages a sliding window along one axis.
func boxPass(src *image.RGBA, radius int, horizontal bool) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(b)

	outer, inner := h, w
	if !horizontal {
		outer, inner = w, h
	}

	at := func(line, i int) (int, int) {
		if horizontal {
			return i, line
		}
		return line, i
	}

	for line := 0; line < outer; line++ {
		for i := 0; i < inner; i++ {
			var r, g, bl, a, n int
			for d := -radius; d <= radius; d++ {
				j := i + d
				if j < 0 || j >= inner {
					continue
				}
				x, y := at(line, j)
				c := src.RGBAAt(b.Min.X+x, b.Min.Y+y)
				r += int(c.R)
				g += int(c.G)
				bl += int(c.B)
				a += int(c.A)
				n++
			}
			x, y := at(line, i)
			dst.SetRGBA(b.Min.X+x, b.Min.Y+y, color.RGBA{
				R: uint8(r / n), G: uint8(g / n), B: uint8(bl / n), A: uint8(a / n),
			})
		}
	}
	return dst
}

// Greyscale converts to luma, preserving alpha. Used for synthesized
// shadows, where the silhouette matters and the color does not.
func (e *Engine) Greyscale(src image.Image) image.Image {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			// ITU-R BT.601 luma.
			luma := (299*r + 587*g + 114*bl) / 1000
			out.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{
				R: uint8(luma >> 8), G: uint8(luma >> 8), B: uint8(luma >> 8), A: uint8(a >> 8),
			})
		}
	}
	return out
}

// Rotate rotates counter-clockwise by degrees, growing the canvas to
// the rotated bounding box. Pixels outside the source stay transparent.
func (e *Engine) Rotate(src image.Image, degrees float64) image.Image {
	if degrees == 0 {
		return src
	}
	rad := degrees * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))

	sb := src.Bounds()
	srcW, srcH := float64(sb.Dx()), float64(sb.Dy())
	dstW := int(math.Ceil(srcW*cos + srcH*sin))
	dstH := int(math.Ceil(srcW*sin + srcH*cos))

	out := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	cx, cy := srcW/2, srcH/2
	dcx, dcy := float64(dstW)/2, float64(dstH)/2

	// Inverse mapping: for each destination pixel, rotate back into
	// source space and sample.
	isin, icos := math.Sin(-rad), math.Cos(-rad)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			dx, dy := float64(x)-dcx, float64(y)-dcy
			sx := int(math.Round(dx*icos - dy*isin + cx))
			sy := int(math.Round(dx*isin + dy*icos + cy))
			if sx < 0 || sx >= int(srcW) || sy < 0 || sy >= int(srcH) {
				continue
			}
			out.Set(x, y, src.At(sb.Min.X+sx, sb.Min.Y+sy))
		}
	}
	return out
}

// Flip mirrors horizontally and/or vertically.
func (e *Engine) Flip(src image.Image, horizontal, vertical bool) image.Image {
	if !horizontal && !vertical {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := x, y
			if horizontal {
				sx = w - 1 - x
			}
			if vertical {
				sy = h - 1 - y
			}
			out.Set(x, y, src.At(b.Min.X+sx, b.Min.Y+sy))
		}
	}
	return out
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out
}
