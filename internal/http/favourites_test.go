package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookhouse/internal/database/favourites"
	"github.com/mrlokans/bookhouse/internal/entities"
)

func newFavouritesRouter(stores *testStores) *gin.Engine {
	return NewRouter(RouterConfig{
		ProgressStore:   stores.progress,
		FavouritesStore: stores.favourites,
	})
}

func TestFavouritesController_AddListRemove(t *testing.T) {
	stores := setupTestStores(t)
	router := newFavouritesRouter(stores)

	dune := entities.CatalogBook{ID: "dune", Title: "Dune", Authors: []string{"Frank Herbert"}}
	emma := entities.CatalogBook{ID: "emma", Title: "Emma"}

	w := performRequest(router, http.MethodPost, "/api/favourites", dune)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, favourites.AddResultAdded, decodeJSON[AddFavouriteResponse](t, w).Result)

	w = performRequest(router, http.MethodPost, "/api/favourites", emma)
	require.Equal(t, http.StatusCreated, w.Code)

	// Re-adding keeps the original snapshot
	w = performRequest(router, http.MethodPost, "/api/favourites", entities.CatalogBook{ID: "dune", Title: "Dune Messiah"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, favourites.AddResultAlreadyPresent, decodeJSON[AddFavouriteResponse](t, w).Result)

	w = performRequest(router, http.MethodGet, "/api/favourites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decodeJSON[FavouritesResponse](t, w)
	require.Equal(t, 2, listed.Total)
	assert.Equal(t, "Dune", listed.Favourites[0].Title)
	assert.Equal(t, "emma", listed.Favourites[1].ID)

	w = performRequest(router, http.MethodDelete, "/api/favourites/dune", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Removing an unknown id is a no-op
	w = performRequest(router, http.MethodDelete, "/api/favourites/missing", nil)
	require.Equal(t, http.StatusOK, w.Code)

	books, err := stores.favourites.ListFavorites(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "emma", books[0].ID)
}

func TestFavouritesController_EnrichedWithProgress(t *testing.T) {
	stores := setupTestStores(t)
	router := newFavouritesRouter(stores)
	ctx := context.Background()

	_, err := stores.favourites.AddFavorite(ctx, entities.CatalogBook{ID: "dune", Title: "Dune"})
	require.NoError(t, err)
	_, err = stores.favourites.AddFavorite(ctx, entities.CatalogBook{ID: "emma", Title: "Emma"})
	require.NoError(t, err)
	_, err = stores.progress.SaveProgress(ctx, entities.ProgressUpdate{BookID: "dune", Page: intPtr(88)})
	require.NoError(t, err)

	w := performRequest(router, http.MethodGet, "/api/favourites", nil)
	require.Equal(t, http.StatusOK, w.Code)

	listed := decodeJSON[FavouritesResponse](t, w)
	require.Len(t, listed.Favourites, 2)
	require.NotNil(t, listed.Favourites[0].LastPage)
	assert.Equal(t, 88, *listed.Favourites[0].LastPage)
	assert.NotNil(t, listed.Favourites[0].LastUpdated)
	assert.Nil(t, listed.Favourites[1].LastPage)
	assert.Nil(t, listed.Favourites[1].LastUpdated)
	assert.Contains(t, w.Body.String(), `"lastPage":null`)
}

func TestFavouritesController_Clear(t *testing.T) {
	stores := setupTestStores(t)
	router := newFavouritesRouter(stores)

	_, err := stores.favourites.AddFavorite(context.Background(), entities.CatalogBook{ID: "dune"})
	require.NoError(t, err)

	w := performRequest(router, http.MethodDelete, "/api/favourites", nil)
	require.Equal(t, http.StatusOK, w.Code)

	books, err := stores.favourites.ListFavorites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestFavouritesController_AddValidation(t *testing.T) {
	stores := setupTestStores(t)
	router := newFavouritesRouter(stores)

	w := performRequest(router, http.MethodPost, "/api/favourites", entities.CatalogBook{ID: "  ", Title: "No id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, "/api/favourites", []string{"not", "a", "book"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	books, err := stores.favourites.ListFavorites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}
