// Package driving defines the interfaces the core offers to external
// actors (CLI, orchestrators, tests).
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; adapters and callers consume them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driving
