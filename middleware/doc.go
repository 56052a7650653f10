// Package middleware exposes the HTTP adapters around goTask.Engine
// authentication.
//
// # Guards
//
//   - [Guard] — requires a valid access bearer; injects the [goTask.Identity]
//     into the request context.
//   - [RejectAuthenticated] — the inverse gate for login and register routes:
//     a request that already carries a valid access bearer is short-circuited.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.Authenticate.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Distinguish failure causes to the client. Every rejection is the same
//     generic response.
package middleware
