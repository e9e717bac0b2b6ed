package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database        Pinger
	Catalog         CatalogSearcher
	NotesStore      NotesStore
	ProgressStore   ProgressStore
	FavouritesStore FavouritesStore

	// Application info
	Version string
}
