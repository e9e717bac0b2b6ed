// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - NotesStore: list/add/delete book notes (internal/http/notes.go)
//   - ProgressStore, ProgressReader: reading progress (internal/http/progress.go, notes.go)
//   - FavouritesStore: starred books (internal/http/favourites.go)
//   - KeyValueStore: blob storage behind favourites (internal/database/favourites)
//   - ProgressLookup: batch progress lookup for favourites enrichment (internal/database/favourites)
//
// ## Infrastructure Interfaces
//
//   - Pinger: store liveness for /health (internal/http/health.go)
//   - Checkpointer: WAL maintenance (internal/scheduler/maintenance.go)
//
// ## External Service Interfaces
//
//   - CatalogSearcher: remote book catalog search (internal/http/search.go)
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Add its table to internal/database/schema.sql with CREATE TABLE IF NOT EXISTS.
//
//  3. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  4. Wrap returned store errors with database.ClassifyError so the HTTP layer
//     can report contention as 503.
//
//  5. Add a compile-time check in checks.go:
//
//     var _ http.SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
