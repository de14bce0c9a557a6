// Package services implements the core scene composition services.
//
// Services are constructed with their dependencies injected through
// driven ports. Optional dependencies may be nil; the affected service
// degrades its behaviour instead of failing (a matcher without a
// reachable store returns empty sets, a composer without a blob store
// embeds artifacts inline).
//
// Scoring and layout logic is pure and network-free: the matcher's
// scoring, the router, the layout math and the placement scoring all
// operate on already-fetched data so they can be unit tested with
// in-memory fixtures.
//
// Import rules:
//   - Can Import: domain, ports, logger
//   - Cannot Import: any adapter package
package services
