package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driving"
	"github.com/custodia-labs/scenekit/internal/logger"
)

// Ensure ScenePipeline implements the interface.
var _ driving.Pipeline = (*ScenePipeline)(nil)

// ScenePipeline sequences the core services for one scene. Per-scene
// computation holds no shared mutable state, so independent scenes may
// run their pipelines fully in parallel.
type ScenePipeline struct {
	analyzer driving.Analyzer
	matcher  driving.Matcher
	router   driving.Router
}

// NewScenePipeline wires the decision chain.
func NewScenePipeline(analyzer driving.Analyzer, matcher driving.Matcher, router driving.Router) *ScenePipeline {
	return &ScenePipeline{analyzer: analyzer, matcher: matcher, router: router}
}

// PlanScene runs analyze → match → route for one scene.
func (p *ScenePipeline) PlanScene(ctx context.Context, scene domain.SceneDescriptor) (driving.ScenePlan, error) {
	if scene.VisualDirection == "" {
		return driving.ScenePlan{}, domain.ErrInvalidInput
	}

	req := p.analyzer.Analyze(scene.VisualDirection, scene.Narration)
	if scene.Output != "" {
		req.OutputType = scene.Output
	}
	if scene.SceneType != "" {
		// Caller hints outrank derived classification.
		req.SceneType = scene.SceneType
	}

	matches := p.matcher.MatchAssets(ctx, req)
	decision := p.router.Route(req, matches)
	logger.Info("scene %s routed to %s (confidence %.2f)", scene.ID, decision.Path, req.Confidence)

	return driving.ScenePlan{
		Scene:        scene,
		Requirements: req,
		Matches:      matches,
		Decision:     decision,
	}, nil
}

// Candidate is one successful generation attempt.
type Candidate[T any] struct {
	Index int
	Value T
}

// PickBest launches n generation tasks concurrently, waits for all of
// them to settle (one failure never cancels the others), and applies the
// scorer to the successful subset. If scoring fails, the first success
// wins deterministically. Only when every task fails does PickBest
// return an error.
func PickBest[T any](ctx context.Context, n int, generate func(ctx context.Context, i int) (T, error), score func([]Candidate[T]) (int, error)) (T, error) {
	var zero T
	results := make([]*T, n)
	var mu sync.Mutex

	// errgroup without cancellation: the group context is deliberately
	// not derived, so sibling tasks keep running when one fails.
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i // per-iteration copy: module targets go 1.21 loop semantics
		g.Go(func() error {
			v, err := generate(ctx, i)
			if err != nil {
				logger.Warn("candidate %d failed: %v", i, err)
				return nil // settle, don't propagate
			}
			mu.Lock()
			results[i] = &v
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var successes []Candidate[T]
	for i, r := range results {
		if r != nil {
			successes = append(successes, Candidate[T]{Index: i, Value: *r})
		}
	}
	if len(successes) == 0 {
		return zero, domain.ErrAllCandidatesFailed
	}

	if score != nil {
		winner, err := score(successes)
		if err == nil && winner >= 0 && winner < len(successes) {
			return successes[winner].Value, nil
		}
		if err != nil {
			logger.Warn("candidate scoring failed: %v (falling back to first success)", err)
		}
	}
	return successes[0].Value, nil
}
