// Package internal documents the EventEase server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, and routing
// - domain: the in-memory stores (events, auth, users, sessions, attendance, themes)
// - notify: the in-process notification bus connecting the stores
// - config, metrics, perf, sanitize: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
