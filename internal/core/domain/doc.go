// Package domain contains the core business types for scenekit.
//
// These types represent the scene composition pipeline: scene descriptors,
// extracted brand requirements, brand assets and their match scores,
// workflow decisions, composition layouts, and overlay placements.
//
// Design principles:
//   - Pure data structures with minimal behaviour
//   - No external dependencies (standard library only)
//   - Records are created fresh per scene and never mutated after
//     the producing service returns them
//
// Import rules:
//   - Can Import: standard library only
//   - Cannot Import: any other scenekit package
package domain
