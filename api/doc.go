// Package api mounts the goTask HTTP surface: credential routes, the
// renewal routes, and the bearer-guarded task routes.
//
// # Routes
//
//	POST   /register       create an account, open the first session
//	POST   /login          open a session for existing credentials
//	POST   /refreshToken   mint a fresh access token from a renewal bearer
//	POST   /logout         revoke a renewal bearer
//	POST   /createTask     guarded: create a pending task
//	GET    /getTasks       guarded: list the caller's tasks
//	DELETE /deleteTask     guarded: delete a task by id
//	PUT    /changeTask     guarded: partial update, status required
//
// # Architecture boundaries
//
// Handlers translate HTTP into Engine calls and Engine errors into status
// codes. No business rules live here: ownership, uniqueness, revocation, and
// validation semantics all belong to the Engine and its stores.
package api
