package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookhouse/internal/catalog"
	"github.com/mrlokans/bookhouse/internal/database"
	"github.com/mrlokans/bookhouse/internal/database/favourites"
	"github.com/mrlokans/bookhouse/internal/database/notes"
	"github.com/mrlokans/bookhouse/internal/database/progress"
	"github.com/mrlokans/bookhouse/internal/database/settings"
	"github.com/mrlokans/bookhouse/internal/http"
	"github.com/mrlokans/bookhouse/internal/scheduler"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// NotesStore implementations
var _ http.NotesStore = (*notes.Repository)(nil)

// ProgressStore implementations
var _ http.ProgressStore = (*progress.Repository)(nil)
var _ http.ProgressReader = (*progress.Repository)(nil)
var _ favourites.ProgressLookup = (*progress.Repository)(nil)

// FavouritesStore implementations
var _ http.FavouritesStore = (*favourites.Repository)(nil)
var _ favourites.KeyValueStore = (*settings.Repository)(nil)

// Database handle
var _ http.Pinger = (*database.Database)(nil)
var _ scheduler.Checkpointer = (*database.Database)(nil)

// =============================================================================
// External Services
// =============================================================================

// CatalogSearcher implementations
var _ http.CatalogSearcher = (*catalog.Client)(nil)
