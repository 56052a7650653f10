// Package store provides the Redis-backed implementations of the goTask
// persistence contracts: user records with an atomic user-name uniqueness
// index, and task documents with a per-owner insertion-order index.
//
// # Architecture boundaries
//
// This package imports the root goTask package for its record types and
// sentinel errors, and go-redis for persistence. It performs no
// authentication, no ownership checks, and no input validation beyond what
// storage integrity requires — all of that is Engine policy.
//
// # Data layout
//
//	{prefix}:user:{id}          JSON user document
//	{prefix}:users:byname       hash: userName -> user id (uniqueness index)
//	{prefix}:task:{id}          JSON task document
//	{prefix}:tasks:owner:{id}   list: task ids in insertion order
package store
