// Package goTask provides an authenticated task-management engine with JWT access
// tokens, whitelisted renewal tokens, and Redis-backed revocation.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goTask is the public surface. It exposes [Engine], [Builder], [Config], the store
// contracts ([UserStore], [TaskStore], [RenewalWhitelist]), and value types
// (TokenPair, Identity, TaskRecord, MetricsSnapshot). Token signing lives in jwt/,
// credential hashing in password/, and Redis persistence in whitelist/ and store/.
//
// # What this package must NOT do
//
//   - Expose Redis clients or key layouts in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
//   - Import any sub-package that re-imports goTask (no import cycles).
//
// # Performance contract
//
// Authenticate is the hot path. It is pure CPU work — signature verification plus
// claim checks — and never touches Redis. Register, Login, Renew, Logout, and the
// task operations are allowed their individual store round-trips.
package goTask
