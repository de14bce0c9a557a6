package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
	"github.com/custodia-labs/scenekit/internal/core/ports/driving"
	"github.com/custodia-labs/scenekit/internal/logger"
)

// Ensure CompositionEngine implements the interface.
var _ driving.Composer = (*CompositionEngine)(nil)

// CompositionEngine computes pixel bounds for product and logo layers and
// rasters them onto a background. Layout math is pure (layout.go); this
// type owns the fetch/raster/upload orchestration around it.
//
// Failure policy: a non-background layer whose source cannot be fetched
// is dropped (logged, counted); a background failure fails the whole
// composition. Upload failure falls back to inline embedding.
type CompositionEngine struct {
	fetcher driven.ImageFetcher
	raster  driven.Rasterizer
	blobs   driven.BlobStore // optional; nil embeds artifacts inline
	cfg     domain.EngineConfig
}

// NewCompositionEngine creates a composition engine. blobs may be nil.
func NewCompositionEngine(fetcher driven.ImageFetcher, raster driven.Rasterizer, blobs driven.BlobStore, cfg domain.EngineConfig) *CompositionEngine {
	return &CompositionEngine{fetcher: fetcher, raster: raster, blobs: blobs, cfg: cfg}
}

// Compose runs one compositing pass.
func (e *CompositionEngine) Compose(ctx context.Context, req domain.CompositionRequest) domain.CompositionResult {
	logger.Section("Composition")
	canvasW, canvasH := canvasSize(req.Output)

	background, err := e.fetchImage(ctx, req.BackgroundURL)
	if err != nil {
		logger.Warn("background fetch failed: %v", err)
		return domain.CompositionResult{
			Success: false,
			Error:   fmt.Errorf("%w: %v", domain.ErrBackgroundFetch, err).Error(),
		}
	}
	base := e.raster.Resize(background, canvasW, canvasH, driven.FitCover)

	result := domain.CompositionResult{Success: true}
	result.Layers = append(result.Layers, domain.LayerBounds{
		Layer:  "background",
		Bounds: domain.Bounds{X: 0, Y: 0, Width: canvasW, Height: canvasH},
	})

	// Products composite in ascending z-index; stable for equal z.
	products := make([]domain.ProductPlacement, len(req.Products))
	copy(products, req.Products)
	sort.SliceStable(products, func(i, j int) bool { return products[i].ZIndex < products[j].ZIndex })

	var layers []driven.Layer
	var productBounds []domain.Bounds
	for _, p := range products {
		img, err := e.fetchImage(ctx, p.SourceURL)
		if err != nil {
			logger.Warn("product layer %s skipped: %v", p.AssetID, err)
			result.SkippedLayers = append(result.SkippedLayers, p.AssetID)
			continue
		}

		subject, bounds := e.layoutProduct(img, p, canvasW, canvasH)
		if p.Shadow != nil {
			shadow, shadowBounds := e.synthesizeShadow(subject, *p.Shadow, bounds)
			layers = append(layers, driven.Layer{
				Image: shadow, X: shadowBounds.X, Y: shadowBounds.Y, Opacity: p.Shadow.Opacity,
			})
			result.Layers = append(result.Layers, domain.LayerBounds{
				Layer: "shadow", AssetID: p.AssetID, ZIndex: p.ZIndex, Bounds: shadowBounds,
			})
		}
		layers = append(layers, driven.Layer{Image: subject, X: bounds.X, Y: bounds.Y, Opacity: 1})
		result.Layers = append(result.Layers, domain.LayerBounds{
			Layer: "product", AssetID: p.AssetID, ZIndex: p.ZIndex, Bounds: bounds,
		})
		productBounds = append(productBounds, bounds)
		logger.Debug("product %s at %+v", p.AssetID, bounds)
	}

	if req.Logo != nil {
		layer, lb, unresolved, err := e.layoutLogo(ctx, *req.Logo, canvasW, canvasH, productBounds)
		switch {
		case err != nil:
			logger.Warn("logo layer %s skipped: %v", req.Logo.AssetID, err)
			result.SkippedLayers = append(result.SkippedLayers, req.Logo.AssetID)
		default:
			layers = append(layers, layer)
			result.Layers = append(result.Layers, lb)
			if unresolved != nil {
				result.Unresolved = append(result.Unresolved, *unresolved)
				logger.Warn("logo overlaps product region after relocation, flagged unresolved")
			}
		}
	}

	result.Raster = e.raster.Composite(base, layers)
	e.publish(ctx, req, &result)
	return result
}

// layoutProduct scales, clamps, flips and rotates one product image and
// resolves its placement bounds.
func (e *CompositionEngine) layoutProduct(img image.Image, p domain.ProductPlacement, canvasW, canvasH int) (image.Image, domain.Bounds) {
	src := img.Bounds()
	w, h := clampToMax(src.Dx(), src.Dy(), p.Scale, p.MaxWidthPct, p.MaxHeightPct, canvasW, canvasH)
	out := e.raster.Resize(img, w, h, driven.FitInside)

	if p.FlipH || p.FlipV {
		out = e.raster.Flip(out, p.FlipH, p.FlipV)
	}
	if p.RotationDeg != 0 {
		out = e.raster.Rotate(out, p.RotationDeg)
		// Rotation grows the bounding box.
		w, h = out.Bounds().Dx(), out.Bounds().Dy()
	}

	x, y := productOrigin(p, w, h, canvasW, canvasH)
	return out, domain.Bounds{X: x, Y: y, Width: w, Height: h}
}

// synthesizeShadow builds the blurred greyscale copy composited beneath
// the subject, on a canvas padded by blur+offset on every side.
func (e *CompositionEngine) synthesizeShadow(subject image.Image, spec domain.ShadowSpec, subjectBounds domain.Bounds) (image.Image, domain.Bounds) {
	offset, padding := shadowGeometry(spec)
	w := subjectBounds.Width + 2*padding
	h := subjectBounds.Height + 2*padding

	padded := image.NewRGBA(image.Rect(0, 0, w, h))
	centered := e.raster.Composite(padded, []driven.Layer{
		{Image: subject, X: padding, Y: padding, Opacity: 1},
	})
	shadow := e.raster.Blur(e.raster.Greyscale(centered), spec.Blur)

	return shadow, domain.Bounds{
		X:      subjectBounds.X - padding + offset,
		Y:      subjectBounds.Y - padding + offset,
		Width:  w,
		Height: h,
	}
}

// layoutLogo fetches and places the logo overlay, relocating it away
// from product bounds. A surviving overlap is returned as a flag, never
// silently accepted.
func (e *CompositionEngine) layoutLogo(ctx context.Context, logo domain.LogoOverlay, canvasW, canvasH int, obstacles []domain.Bounds) (driven.Layer, domain.LayerBounds, *domain.UnresolvedOverlap, error) {
	img, err := e.fetchImage(ctx, logo.SourceURL)
	if err != nil {
		return driven.Layer{}, domain.LayerBounds{}, nil, err
	}

	src := img.Bounds()
	logoW := int(float64(canvasW) * logoWidthFraction(logo.Size))
	logoH := logoW
	if src.Dx() > 0 {
		logoH = logoW * src.Dy() / src.Dx()
	}
	scaled := e.raster.Resize(img, logoW, logoH, driven.FitInside)

	bounds, anchor, resolved := placeLogoAvoiding(logo.Position, logoW, logoH, canvasW, canvasH, e.cfg.SafeZoneMargin, obstacles)
	if anchor != logo.Position {
		logger.Debug("logo relocated from %s to %s", logo.Position, anchor)
	}

	layer := driven.Layer{
		Image:   scaled,
		X:       bounds.X,
		Y:       bounds.Y,
		Opacity: watermarkOpacity(logo, e.cfg.WatermarkOpacityCeiling),
	}
	lb := domain.LayerBounds{Layer: "logo", AssetID: logo.AssetID, ZIndex: 1 << 10, Bounds: bounds}

	var unresolved *domain.UnresolvedOverlap
	if !resolved {
		unresolved = &domain.UnresolvedOverlap{Layer: "logo", Against: "product", Bounds: bounds}
	}
	return layer, lb, unresolved, nil
}

// fetchImage downloads and decodes one source image.
func (e *CompositionEngine) fetchImage(ctx context.Context, url string) (image.Image, error) {
	data, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	img, err := e.raster.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}

// publish encodes and uploads the composited frame, falling back to an
// inline data URI when upload fails or no blob store is configured.
func (e *CompositionEngine) publish(ctx context.Context, req domain.CompositionRequest, result *domain.CompositionResult) {
	format := req.Output.Format
	if format == "" {
		format = "png"
	}
	data, err := e.raster.Encode(result.Raster, format, req.Output.Quality)
	if err != nil {
		logger.Warn("artifact encode failed: %v", err)
		result.Success = false
		result.Error = fmt.Sprintf("encode: %v", err)
		return
	}

	contentType := "image/" + format
	if e.blobs != nil {
		key := fmt.Sprintf("%s-%s.%s", req.SceneID, uuid.NewString(), format)
		url, err := e.blobs.Upload(ctx, data, key, contentType)
		if err == nil {
			result.ImageURL = url
			return
		}
		logger.Warn("artifact upload failed: %v (embedding inline)", err)
	}
	result.DataURI = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
