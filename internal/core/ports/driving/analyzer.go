package driving

import "github.com/custodia-labs/scenekit/internal/core/domain"

// Analyzer extracts structured brand requirements from scene text.
type Analyzer interface {
	// Analyze classifies the visual direction and narration into a
	// requirement record. Pure: identical inputs yield identical
	// records. Absence of signals yields a low-confidence standard
	// record, never an error.
	Analyze(visualDirection, narration string) domain.BrandRequirements
}
