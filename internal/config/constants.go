package config

// Default paths and endpoints
const (
	// DefaultDatabasePath is the default path for the local notes/progress database
	DefaultDatabasePath = "./bookhouse.db"

	// DefaultCatalogBaseURL is the Google Books volumes search endpoint
	DefaultCatalogBaseURL = "https://www.googleapis.com/books/v1/volumes"

	// DefaultBusyTimeout is how long a writer waits on a locked database before failing
	DefaultBusyTimeout = "5s"
)
