package driving

import "github.com/custodia-labs/scenekit/internal/core/domain"

// Router maps a requirement+match pair to one of the six fixed workflow
// paths.
type Router interface {
	// Route is a pure decision function: calling it twice with equal
	// inputs yields an identical decision. It performs no I/O.
	Route(req domain.BrandRequirements, matches domain.MatchedAssetSet) domain.WorkflowDecision
}
