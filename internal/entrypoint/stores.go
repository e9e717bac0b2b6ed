package entrypoint

import (
	"fmt"
	"time"

	"github.com/mrlokans/bookhouse/internal/database"
	"github.com/mrlokans/bookhouse/internal/database/favourites"
	"github.com/mrlokans/bookhouse/internal/database/notes"
	"github.com/mrlokans/bookhouse/internal/database/progress"
	"github.com/mrlokans/bookhouse/internal/database/settings"
)

// Stores bundles the repositories that share one database handle.
type Stores struct {
	DB         *database.Database
	Notes      *notes.Repository
	Progress   *progress.Repository
	Favourites *favourites.Repository
}

// OpenStores opens the database at path and builds every repository on top of it.
func OpenStores(path string, busyTimeout time.Duration) (*Stores, error) {
	db, err := database.Open(path, database.Options{BusyTimeout: busyTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	progressRepo := progress.NewRepository(db.DB)
	return &Stores{
		DB:         db,
		Notes:      notes.NewRepository(db.DB),
		Progress:   progressRepo,
		Favourites: favourites.NewRepository(settings.NewRepository(db.DB), progressRepo),
	}, nil
}

func (s *Stores) Close() error {
	return s.DB.Close()
}
