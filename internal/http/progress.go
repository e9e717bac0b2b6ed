package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhouse/internal/database/progress"
	"github.com/mrlokans/bookhouse/internal/entities"
)

// ProgressStore defines database operations for reading progress.
type ProgressStore interface {
	GetProgress(ctx context.Context, bookID string) (*entities.ReadingProgress, error)
	SaveProgress(ctx context.Context, update entities.ProgressUpdate) (*entities.ReadingProgress, error)
}

type ProgressController struct {
	store ProgressStore
	guard submissionGuard
}

func NewProgressController(store ProgressStore) *ProgressController {
	return &ProgressController{store: store}
}

// SaveProgressRequest is the body of a progress update. Omitted fields clear
// the stored value.
type SaveProgressRequest struct {
	Title          string `json:"title"`
	LastPage       *int   `json:"lastPage" binding:"omitempty,min=0"`
	LastReflection string `json:"lastReflection"`
	AlsoCreateNote bool   `json:"alsoCreateNote"`
}

// GetProgress returns the progress row for a book.
// GET /api/books/:bookId/progress
func (pc *ProgressController) GetProgress(c *gin.Context) {
	bookID, ok := parseBookIDParam(c, "bookId")
	if !ok {
		return
	}

	readingProgress, err := pc.store.GetProgress(c.Request.Context(), bookID)
	if err != nil {
		respondStoreError(c, err, "get progress")
		return
	}
	if readingProgress == nil {
		respondNotFound(c, "progress")
		return
	}

	c.JSON(http.StatusOK, readingProgress)
}

// SaveProgress upserts the progress row, optionally recording the reflection as a note.
// PUT /api/books/:bookId/progress
func (pc *ProgressController) SaveProgress(c *gin.Context) {
	bookID, ok := parseBookIDParam(c, "bookId")
	if !ok {
		return
	}

	var req SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	update := entities.ProgressUpdate{
		BookID:         bookID,
		Title:          strings.TrimSpace(req.Title),
		Page:           req.LastPage,
		Reflection:     req.LastReflection,
		AlsoCreateNote: req.AlsoCreateNote,
	}

	result, err, _ := pc.guard.do("progress:"+bookID, update, func() (any, error) {
		return pc.store.SaveProgress(context.Background(), update)
	})
	if err != nil {
		if errors.Is(err, progress.ErrMissingBookID) || errors.Is(err, progress.ErrNegativePage) {
			respondBadRequest(c, err.Error())
			return
		}
		respondStoreError(c, err, "save progress")
		return
	}

	c.JSON(http.StatusOK, result.(*entities.ReadingProgress))
}
