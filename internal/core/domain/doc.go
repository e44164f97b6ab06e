// Package domain contains the core business entities of gramasurvey:
// the in-progress household draft, the declarative section catalog, the
// server-shaped record and the pure transformation between them, plus
// session and sync-status types. It has no dependencies on adapters.
package domain
