package driving

import (
	"context"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

// Composer computes pixel layouts and rasters product/logo layers onto a
// background.
type Composer interface {
	// Compose runs one compositing pass. Fatal failures (background
	// fetch, raster errors) come back as Success=false with Error set;
	// they are never returned as a Go error across this boundary.
	Compose(ctx context.Context, req domain.CompositionRequest) domain.CompositionResult
}
