package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driving"
	"github.com/custodia-labs/scenekit/internal/logger"
)

// Ensure OverlayPlacementEngine implements the interface.
var _ driving.PlacementEngine = (*OverlayPlacementEngine)(nil)

// placementGrid is the fixed set of candidate anchors, in evaluation
// order. Ties in score resolve to the earlier grid entry.
var placementGrid = []domain.Anchor{
	domain.AnchorTopLeft,
	domain.AnchorTopCenter,
	domain.AnchorTopRight,
	domain.AnchorCenterLeft,
	domain.AnchorCenter,
	domain.AnchorCenterRight,
	domain.AnchorBottomLeft,
	domain.AnchorBottomCenter,
	domain.AnchorBottomRight,
	domain.AnchorLowerThird,
}

// preferredAnchors lists each overlay type's preferred positions.
var preferredAnchors = map[domain.OverlayType][]domain.Anchor{
	domain.OverlayCaption:    {domain.AnchorBottomCenter, domain.AnchorLowerThird, domain.AnchorBottomLeft, domain.AnchorBottomRight},
	domain.OverlayTitle:      {domain.AnchorCenter, domain.AnchorTopCenter},
	domain.OverlayLowerThird: {domain.AnchorLowerThird, domain.AnchorBottomLeft, domain.AnchorBottomCenter},
	domain.OverlayCTA:        {domain.AnchorBottomCenter, domain.AnchorCenter, domain.AnchorLowerThird},
	domain.OverlayLogo:       {domain.AnchorTopRight, domain.AnchorTopLeft, domain.AnchorBottomRight},
}

// animationStyles keys enter/exit styles by overlay type.
var animationStyles = map[domain.OverlayType]domain.Animation{
	domain.OverlayCaption:    {Enter: "slide-up", Exit: "fade-out", DurationSec: 0.3},
	domain.OverlayTitle:      {Enter: "fade-in", Exit: "fade-out", DurationSec: 0.5},
	domain.OverlayLowerThird: {Enter: "slide-in-left", Exit: "slide-out-left", DurationSec: 0.4},
	domain.OverlayCTA:        {Enter: "pop-in", Exit: "fade-out", DurationSec: 0.4},
	domain.OverlayLogo:       {Enter: "fade-in", Exit: "fade-out", DurationSec: 0.3},
}

// OverlayPlacementEngine chooses a non-conflicting position and time
// window for each overlay of a scene. Scoring is pure and synchronous;
// the engine holds no state between calls.
type OverlayPlacementEngine struct {
	weights domain.PlacementWeights
}

// NewOverlayPlacementEngine creates a placement engine.
func NewOverlayPlacementEngine(weights domain.PlacementWeights) *OverlayPlacementEngine {
	return &OverlayPlacementEngine{weights: weights}
}

// CalculatePlacements places every overlay, rejecting those whose best
// candidate does not beat the threshold, then resolves temporal
// collisions between overlays sharing screen space.
func (e *OverlayPlacementEngine) CalculatePlacements(overlays []domain.Overlay, frame domain.FrameAnalysis, durationSec float64, fps int) domain.PlacementReport {
	logger.Section("Overlay Placement")
	if fps <= 0 {
		fps = 30
	}
	totalFrames := int(durationSec * float64(fps))

	unique := dedupOverlays(overlays)
	report := domain.PlacementReport{Unique: len(unique)}

	var accepted []domain.OverlayPlacement
	for _, overlay := range unique {
		anchor, score, reason := e.bestCandidate(overlay, frame, accepted)
		if score <= e.weights.RejectBelow {
			// No bad placement is better than a wrong one.
			logger.Debug("overlay %q rejected: best score %d", overlay.ID, score)
			report.Skipped++
			continue
		}

		placement := domain.OverlayPlacement{
			ID:        overlay.ID,
			Overlay:   overlay,
			Anchor:    anchor,
			Position:  anchorPoint(anchor),
			Timing:    timingFor(overlay.Type, totalFrames),
			Animation: animationStyles[overlay.Type],
			Score:     score,
			Reason:    reason,
		}
		accepted = append(accepted, placement)
		logger.Debug("overlay %q -> %s (score %d)", overlay.ID, anchor, score)
	}

	e.resolveCollisions(accepted, totalFrames, fps)
	report.Placements = accepted
	logger.Info("placed %d overlays, skipped %d", len(accepted), report.Skipped)
	return report
}

// dedupOverlays removes overlays with identical text and type, keeping
// the first occurrence.
func dedupOverlays(overlays []domain.Overlay) []domain.Overlay {
	seen := make(map[string]bool, len(overlays))
	out := make([]domain.Overlay, 0, len(overlays))
	for _, o := range overlays {
		if seen[o.Key()] {
			continue
		}
		seen[o.Key()] = true
		out = append(out, o)
	}
	return out
}

// bestCandidate scores every grid anchor for one overlay and returns the
// winner with its diagnostic reason.
func (e *OverlayPlacementEngine) bestCandidate(overlay domain.Overlay, frame domain.FrameAnalysis, accepted []domain.OverlayPlacement) (domain.Anchor, int, string) {
	bestAnchor := placementGrid[0]
	bestScore := math.MinInt
	bestReason := ""

	anyBottomBusy := false
	for _, region := range frame.BusyRegions {
		if region.IsBottom() {
			anyBottomBusy = true
			break
		}
	}

	for _, anchor := range placementGrid {
		score, reason := e.scoreCandidate(overlay, anchor, frame, accepted, anyBottomBusy)
		if score > bestScore {
			bestScore = score
			bestAnchor = anchor
			bestReason = reason
		}
	}
	return bestAnchor, bestScore, bestReason
}

// scoreCandidate applies the base score, the type preference and safe
// zone bonuses, and the face/busy/crowding penalties for one anchor.
func (e *OverlayPlacementEngine) scoreCandidate(overlay domain.Overlay, anchor domain.Anchor, frame domain.FrameAnalysis, accepted []domain.OverlayPlacement, anyBottomBusy bool) (int, string) {
	point := anchorPoint(anchor)
	score := e.weights.Base
	var notes []string

	for _, pref := range preferredAnchors[overlay.Type] {
		if pref == anchor {
			score += e.weights.PreferredPosition
			notes = append(notes, "preferred for "+string(overlay.Type))
			break
		}
	}

	for _, safe := range frame.SafeAnchors {
		if safe == anchor {
			score += e.weights.SafeZone
			notes = append(notes, "safe zone")
			break
		}
	}

	for _, face := range frame.Faces {
		if face.Expand(e.weights.FacePaddingPct).Contains(point.X, point.Y) {
			score -= e.weights.FacePenalty
			notes = append(notes, "overlaps face")
			break
		}
	}

	for _, busy := range frame.BusyRegions {
		if busy.Contains(point.X, point.Y) {
			score -= e.weights.BusyPenalty
			notes = append(notes, "busy region")
			break
		}
	}
	if anchor == domain.AnchorLowerThird && anyBottomBusy {
		score -= e.weights.LowerThirdBusyPenalty
		notes = append(notes, "bottom clutter")
	}

	for _, other := range accepted {
		if e.tooClose(point, other.Position) {
			score -= e.weights.CrowdingPenalty
			notes = append(notes, "crowded by "+other.ID)
		}
	}

	reason := fmt.Sprintf("%s (score %d)", anchor, score)
	if len(notes) > 0 {
		reason = fmt.Sprintf("%s: %s (score %d)", anchor, strings.Join(notes, ", "), score)
	}
	return score, reason
}

// tooClose applies the closeness thresholds in canvas percent.
func (e *OverlayPlacementEngine) tooClose(a, b domain.Position) bool {
	return math.Abs(a.X-b.X) < e.weights.CrowdingDX &&
		math.Abs(a.Y-b.Y) < e.weights.CrowdingDY
}

// timingFor derives the type-specific visibility window. Titles appear
// early and exit before the end; lower-thirds enter later and persist
// near the end; CTAs occupy the back half of the scene.
func timingFor(t domain.OverlayType, totalFrames int) domain.Timing {
	frac := func(f float64) int { return int(math.Round(float64(totalFrames) * f)) }
	switch t {
	case domain.OverlayTitle:
		return domain.Timing{StartFrame: 0, EndFrame: frac(0.40)}
	case domain.OverlayLowerThird:
		return domain.Timing{StartFrame: frac(0.30), EndFrame: frac(0.95)}
	case domain.OverlayCTA:
		return domain.Timing{StartFrame: frac(0.50), EndFrame: totalFrames}
	case domain.OverlayLogo:
		return domain.Timing{StartFrame: 0, EndFrame: totalFrames}
	default: // caption
		return domain.Timing{StartFrame: frac(0.10), EndFrame: frac(0.90)}
	}
}

// resolveCollisions pushes the later-starting of any two overlays that
// share near-identical screen space and overlapping frame windows to
// just after the earlier one ends, plus a frame buffer.
func (e *OverlayPlacementEngine) resolveCollisions(placements []domain.OverlayPlacement, totalFrames, fps int) {
	// Process in start order so cascaded pushes stay deterministic.
	order := make([]*domain.OverlayPlacement, len(placements))
	for i := range placements {
		order[i] = &placements[i]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Timing.StartFrame < order[j].Timing.StartFrame
	})

	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := order[i], order[j]
			if !e.tooClose(a.Position, b.Position) {
				continue
			}
			if !a.Timing.Overlaps(b.Timing) {
				continue
			}

			span := b.Timing.EndFrame - b.Timing.StartFrame
			b.Timing.StartFrame = a.Timing.EndFrame + e.weights.CollisionBufferFrames
			b.Timing.EndFrame = b.Timing.StartFrame + span
			if b.Timing.EndFrame > totalFrames {
				b.Timing.EndFrame = totalFrames
			}
			if b.Timing.StartFrame >= b.Timing.EndFrame {
				// Pushed off the end of the scene; keep a minimal
				// window of one second so the overlay still shows.
				b.Timing.EndFrame = totalFrames
				b.Timing.StartFrame = totalFrames - fps
				if b.Timing.StartFrame < a.Timing.EndFrame {
					b.Timing.StartFrame = a.Timing.EndFrame
				}
			}
			logger.Debug("pushed overlay %q to frames %d-%d after %q",
				b.ID, b.Timing.StartFrame, b.Timing.EndFrame, a.ID)
		}
	}
}
