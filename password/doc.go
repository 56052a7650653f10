// Package password wraps bcrypt hashing behind a small verifier interface so
// the engine never handles hash parameters or library errors directly.
package password
