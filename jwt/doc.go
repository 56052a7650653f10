// Package jwt signs and verifies the two classes of goTask bearer tokens —
// short-lived access tokens and long-lived renewal tokens — under two
// completely independent HS256 secrets with strict validation semantics.
package jwt
