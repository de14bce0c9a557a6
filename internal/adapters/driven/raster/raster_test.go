package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

func solid(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	e := New()
	src := solid(4, 4, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	data, err := e.Encode(src, "png", 0)
	require.NoError(t, err)

	decoded, err := e.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), decoded.Bounds())
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	e := New()

	_, err := e.Encode(solid(2, 2, color.RGBA{A: 255}), "webp", 0)

	assert.Error(t, err)
}

func TestDecode_Garbage(t *testing.T) {
	e := New()

	_, err := e.Decode([]byte("not an image"))

	assert.Error(t, err)
}

func TestResize_CoverFillsTarget(t *testing.T) {
	e := New()
	src := solid(400, 300, color.RGBA{R: 50, G: 50, B: 50, A: 255})

	out := e.Resize(src, 200, 100, driven.FitCover)

	assert.Equal(t, 200, out.Bounds().Dx())
	assert.Equal(t, 100, out.Bounds().Dy())
}

func TestResize_InsidePreservesAspect(t *testing.T) {
	e := New()
	src := solid(400, 200, color.RGBA{R: 50, G: 50, B: 50, A: 255})

	out := e.Resize(src, 100, 100, driven.FitInside)

	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
}

func TestComposite_LayerOrderAndOffset(t *testing.T) {
	e := New()
	base := solid(10, 10, color.RGBA{R: 255, A: 255})
	green := solid(4, 4, color.RGBA{G: 255, A: 255})
	blue := solid(2, 2, color.RGBA{B: 255, A: 255})

	out := e.Composite(base, []driven.Layer{
		{Image: green, X: 2, Y: 2, Opacity: 1},
		{Image: blue, X: 2, Y: 2, Opacity: 1},
	})

	rgba := out.(*image.RGBA)
	// The later layer wins where both overlap.
	assert.Equal(t, uint8(255), rgba.RGBAAt(3, 3).B)
	// The first layer shows where only it covers.
	assert.Equal(t, uint8(255), rgba.RGBAAt(5, 5).G)
	// The base shows outside every layer.
	assert.Equal(t, uint8(255), rgba.RGBAAt(0, 0).R)
}

func TestComposite_OpacityBlends(t *testing.T) {
	e := New()
	base := solid(4, 4, color.RGBA{A: 255}) // black
	white := solid(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out := e.Composite(base, []driven.Layer{{Image: white, X: 0, Y: 0, Opacity: 0.5}})

	rgba := out.(*image.RGBA)
	got := rgba.RGBAAt(1, 1)
	// Half-opaque white over black lands mid-grey.
	assert.InDelta(t, 127, int(got.R), 2)
	assert.Equal(t, uint8(255), got.A)
}

func TestBlur_SoftensEdge(t *testing.T) {
	e := New()
	img := image.NewRGBA(image.Rect(0, 0, 9, 1))
	for x := 0; x < 9; x++ {
		c := color.RGBA{A: 255}
		if x >= 5 {
			c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		img.SetRGBA(x, 0, c)
	}

	out := e.Blur(img, 2).(*image.RGBA)

	edge := out.RGBAAt(4, 0)
	assert.Greater(t, edge.R, uint8(0))
	assert.Less(t, edge.R, uint8(255))
}

func TestBlur_ZeroRadiusIsIdentity(t *testing.T) {
	e := New()
	src := solid(3, 3, color.RGBA{R: 9, A: 255})

	assert.Same(t, src, e.Blur(src, 0))
}

func TestGreyscale_PreservesAlpha(t *testing.T) {
	e := New()
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{})

	out := e.Greyscale(img).(*image.RGBA)

	grey := out.RGBAAt(0, 0)
	assert.Equal(t, grey.R, grey.G)
	assert.Equal(t, grey.G, grey.B)
	assert.Equal(t, uint8(255), grey.A)
	assert.Equal(t, uint8(0), out.RGBAAt(1, 0).A)
}

func TestRotate_GrowsBoundingBox(t *testing.T) {
	e := New()
	src := solid(100, 50, color.RGBA{R: 255, A: 255})

	out := e.Rotate(src, 90)
	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 100, out.Bounds().Dy())

	out = e.Rotate(src, 45)
	assert.Greater(t, out.Bounds().Dx(), 100)
	assert.Greater(t, out.Bounds().Dy(), 50)
}

func TestFlip(t *testing.T) {
	e := New()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	h := e.Flip(img, true, false).(*image.RGBA)
	assert.Equal(t, uint8(255), h.RGBAAt(1, 0).R)
	assert.Equal(t, uint8(0), h.RGBAAt(0, 0).R)

	v := e.Flip(img, false, true).(*image.RGBA)
	assert.Equal(t, uint8(255), v.RGBAAt(0, 1).R)

	both := e.Flip(img, true, true).(*image.RGBA)
	assert.Equal(t, uint8(255), both.RGBAAt(1, 1).R)

	assert.Same(t, img, e.Flip(img, false, false))
}
