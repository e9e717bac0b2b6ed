package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional dependencies that are nil leave their routes unregistered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	if cfg.Catalog != nil {
		searchController := NewSearchController(cfg.Catalog)
		api.GET("/search", searchController.Search)
	}

	if cfg.NotesStore != nil {
		var progressReader ProgressReader
		if cfg.ProgressStore != nil {
			progressReader = cfg.ProgressStore
		}
		notesController := NewNotesController(cfg.NotesStore, progressReader)
		api.GET("/books/:bookId/notes", notesController.ListNotes)
		api.POST("/books/:bookId/notes", notesController.AddNote)
		api.GET("/books/:bookId/notes/export", notesController.ExportNotes)
		api.DELETE("/notes/:id", notesController.DeleteNote)
	}

	if cfg.ProgressStore != nil {
		progressController := NewProgressController(cfg.ProgressStore)
		api.GET("/books/:bookId/progress", progressController.GetProgress)
		api.PUT("/books/:bookId/progress", progressController.SaveProgress)
	}

	if cfg.FavouritesStore != nil {
		favouritesController := NewFavouritesController(cfg.FavouritesStore)
		api.GET("/favourites", favouritesController.ListFavourites)
		api.POST("/favourites", favouritesController.AddFavourite)
		api.DELETE("/favourites", favouritesController.ClearFavourites)
		api.DELETE("/favourites/:bookId", favouritesController.RemoveFavourite)
	}

	return router
}
