package driven

import "github.com/custodia-labs/scenekit/internal/core/domain"

// ConfigSource provides engine configuration overrides. Implementations
// start from domain.DefaultEngineConfig and overlay stored values.
type ConfigSource interface {
	// Load returns the effective engine configuration.
	Load() (domain.EngineConfig, error)
}
