// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy. Depending on the use case you can generate:
//   - Time-ordered UUIDs (correlation and event IDs).
//   - Prefixed random tokens (handles handed to clients, which must not be guessable).
package pkguid
