package entrypoint

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookhouse/internal/entities"
)

func TestOpenStores_SharesOneDatabase(t *testing.T) {
	stores, err := OpenStores(filepath.Join(t.TempDir(), "bookhouse.db"), 2*time.Second)
	require.NoError(t, err)
	defer stores.Close()

	ctx := context.Background()
	page := 7
	_, err = stores.Progress.SaveProgress(ctx, entities.ProgressUpdate{BookID: "b1", Page: &page})
	require.NoError(t, err)
	_, err = stores.Favourites.AddFavorite(ctx, entities.CatalogBook{ID: "b1", Title: "Dune"})
	require.NoError(t, err)

	favorites, err := stores.Favourites.ListFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.NotNil(t, favorites[0].LastPage)
	assert.Equal(t, 7, *favorites[0].LastPage)

	require.NoError(t, stores.DB.Ping(ctx))
}

func TestOpenStores_InvalidPath(t *testing.T) {
	_, err := OpenStores(filepath.Join(t.TempDir(), "missing", "dir", "bookhouse.db"), time.Second)

	assert.Error(t, err)
}
