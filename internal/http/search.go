package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhouse/internal/catalog"
	"github.com/mrlokans/bookhouse/internal/entities"
)

// CatalogSearcher queries the remote book catalog.
type CatalogSearcher interface {
	Search(ctx context.Context, query string, scope catalog.Scope) ([]entities.CatalogBook, error)
}

type SearchController struct {
	catalog CatalogSearcher
}

func NewSearchController(searcher CatalogSearcher) *SearchController {
	return &SearchController{catalog: searcher}
}

type SearchResponse struct {
	Query string                 `json:"query"`
	Scope catalog.Scope          `json:"scope"`
	Items []entities.CatalogBook `json:"items"`
}

// Search proxies a scoped query to the catalog.
// GET /api/search?q=dune&scope=title
func (sc *SearchController) Search(c *gin.Context) {
	scope, err := catalog.ParseScope(c.Query("scope"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	query := c.Query("q")
	books, err := sc.catalog.Search(c.Request.Context(), query, scope)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyQuery) {
			respondBadRequest(c, err.Error())
			return
		}
		respondUpstreamError(c, err, "catalog search")
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Query: query, Scope: scope, Items: books})
}
