package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhouse/internal/database/favourites"
	"github.com/mrlokans/bookhouse/internal/entities"
)

// FavouritesStore defines operations on the starred books collection.
type FavouritesStore interface {
	ListFavorites(ctx context.Context) ([]entities.FavoriteBook, error)
	AddFavorite(ctx context.Context, book entities.CatalogBook) (favourites.AddResult, error)
	RemoveFavorite(ctx context.Context, id string) error
	ClearFavorites(ctx context.Context) error
}

type FavouritesController struct {
	store FavouritesStore
}

func NewFavouritesController(store FavouritesStore) *FavouritesController {
	return &FavouritesController{store: store}
}

type FavouritesResponse struct {
	Favourites []entities.FavoriteBook `json:"favourites"`
	Total      int                     `json:"total"`
}

type AddFavouriteResponse struct {
	Result favourites.AddResult `json:"result"`
	Book   entities.CatalogBook `json:"book"`
}

// ListFavourites returns starred books in insertion order with their reading progress.
// GET /api/favourites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	books, err := fc.store.ListFavorites(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list favourites")
		return
	}

	c.JSON(http.StatusOK, FavouritesResponse{Favourites: books, Total: len(books)})
}

// AddFavourite stars a book. The body is the full catalog record, stored as a snapshot.
// POST /api/favourites
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	var book entities.CatalogBook
	if err := c.ShouldBindJSON(&book); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}
	book.ID = strings.TrimSpace(book.ID)

	result, err := fc.store.AddFavorite(c.Request.Context(), book)
	if err != nil {
		if errors.Is(err, favourites.ErrMissingBookID) {
			respondBadRequest(c, err.Error())
			return
		}
		respondStoreError(c, err, "add favourite")
		return
	}

	status := http.StatusOK
	if result == favourites.AddResultAdded {
		status = http.StatusCreated
	}
	c.JSON(status, AddFavouriteResponse{Result: result, Book: book})
}

// RemoveFavourite unstars a book. Unknown ids are not an error.
// DELETE /api/favourites/:bookId
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	bookID, ok := parseBookIDParam(c, "bookId")
	if !ok {
		return
	}

	if err := fc.store.RemoveFavorite(c.Request.Context(), bookID); err != nil {
		respondStoreError(c, err, "remove favourite")
		return
	}

	respondSuccess(c, "favourite removed")
}

// ClearFavourites removes every starred book.
// DELETE /api/favourites
func (fc *FavouritesController) ClearFavourites(c *gin.Context) {
	if err := fc.store.ClearFavorites(c.Request.Context()); err != nil {
		respondStoreError(c, err, "clear favourites")
		return
	}

	respondSuccess(c, "favourites cleared")
}
