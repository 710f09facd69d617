// Package internal documents the GRM Atlanta API server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, error rendering, and routing
// - domain: business logic (registrations, admins) and id minting
// - storage: Postgres repositories and migrations
// - content: static event and blog catalogs
// - email: Resend-backed registration notifications
// - export: CSV rendering for the admin dashboard
// - auth, config: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
