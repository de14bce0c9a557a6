package driving

import "github.com/custodia-labs/scenekit/internal/core/domain"

// PlacementEngine chooses non-conflicting positions and time windows for
// a scene's ephemeral overlays.
type PlacementEngine interface {
	// CalculatePlacements scores the candidate grid for every overlay
	// and resolves temporal collisions. Overlays whose best candidate
	// does not beat the rejection threshold are skipped and counted.
	CalculatePlacements(overlays []domain.Overlay, frame domain.FrameAnalysis, durationSec float64, fps int) domain.PlacementReport
}
