// Package database provides the local store for notes, reading progress and
// key-value settings.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, pragmas, schema
//	├── schema.sql       # CREATE ... IF NOT EXISTS statements
//	├── notes/           # book_notes list/add/delete
//	├── progress/        # reading_progress get/upsert
//	├── settings/        # Key-value settings
//	└── favourites/      # Favorites blob stored in settings
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./bookhouse.db")
//
//	notesRepo := notes.NewRepository(db.DB)
//	progressRepo := progress.NewRepository(db.DB)
//	favouritesRepo := favourites.NewRepository(settings.NewRepository(db.DB), progressRepo)
//
// # Concurrency
//
// The database runs in WAL mode so readers are not blocked by the single
// writer. A write that cannot get the lock within the busy timeout (5s by
// default) fails with an error wrapping ErrStoreBusy. Multi-statement writes
// run in one transaction. There is no application-level locking between
// operations on the same book.
package database
