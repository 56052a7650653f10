// Package whitelist is the Redis-backed registry of live renewal tokens.
//
// A renewal token is only honored while its entry exists here: issuance adds
// the entry with a TTL matching the token lifetime, logout removes it, and
// expiry lets Redis reap it. Tokens are never stored verbatim — only a SHA-256
// digest of the token string is used as key material, so a Redis dump does
// not yield usable bearers.
//
// # Architecture boundaries
//
// This package depends only on go-redis. It knows nothing about JWT claims,
// users, or tasks; it stores opaque token strings against owner ids.
//
// # What this package must NOT do
//
//   - Parse or validate token contents. Verification belongs to the jwt package.
//   - Decide policy. Whether a missing entry is an error is the engine's call.
package whitelist
