// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AssetStore: brand asset repository queries
//   - ImageFetcher: retrieves source image bytes (composition only)
//   - Rasterizer: raster primitives (composition only)
//
// # Optional Interfaces
//
// These can be nil; the engine degrades gracefully:
//
//   - BlobStore: artifact upload. Without it, composition results embed
//     the artifact inline.
//   - ConfigSource: weight overrides. Without it, defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
