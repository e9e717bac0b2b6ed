package http

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhouse/internal/database/notes"
	"github.com/mrlokans/bookhouse/internal/entities"
	"github.com/mrlokans/bookhouse/internal/exporters"
)

// NotesStore defines database operations for book notes.
type NotesStore interface {
	ListNotes(ctx context.Context, bookID string) ([]entities.BookNote, error)
	AddNote(ctx context.Context, input entities.NewNote) (*entities.BookNote, error)
	DeleteNote(ctx context.Context, id uint) error
}

// ProgressReader is the read side of reading progress, used by the export.
type ProgressReader interface {
	GetProgress(ctx context.Context, bookID string) (*entities.ReadingProgress, error)
}

type NotesController struct {
	store    NotesStore
	progress ProgressReader
	guard    submissionGuard
}

func NewNotesController(store NotesStore, progress ProgressReader) *NotesController {
	return &NotesController{store: store, progress: progress}
}

// AddNoteRequest is the body of a note submission.
type AddNoteRequest struct {
	Title string            `json:"title"`
	Note  string            `json:"note" binding:"required"`
	Page  *int              `json:"page" binding:"omitempty,min=0"`
	Kind  entities.NoteKind `json:"kind" binding:"omitempty,oneof=note highlight reflection"`
}

type NotesResponse struct {
	BookID string              `json:"bookId"`
	Notes  []entities.BookNote `json:"notes"`
	Total  int                 `json:"total"`
}

// ListNotes returns every note for a book, newest first.
// GET /api/books/:bookId/notes
func (nc *NotesController) ListNotes(c *gin.Context) {
	bookID, ok := parseBookIDParam(c, "bookId")
	if !ok {
		return
	}

	bookNotes, err := nc.store.ListNotes(c.Request.Context(), bookID)
	if err != nil {
		respondStoreError(c, err, "list notes")
		return
	}

	c.JSON(http.StatusOK, NotesResponse{BookID: bookID, Notes: bookNotes, Total: len(bookNotes)})
}

// AddNote records a new note for a book.
// POST /api/books/:bookId/notes
func (nc *NotesController) AddNote(c *gin.Context) {
	bookID, ok := parseBookIDParam(c, "bookId")
	if !ok {
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	input := entities.NewNote{
		BookID: bookID,
		Title:  strings.TrimSpace(req.Title),
		Text:   req.Note,
		Page:   req.Page,
		Kind:   req.Kind,
	}

	// Shared between identical callers, so not bound to one request's context.
	result, err, _ := nc.guard.do("note:"+bookID, input, func() (any, error) {
		return nc.store.AddNote(context.Background(), input)
	})
	if err != nil {
		if isNoteValidationError(err) {
			respondBadRequest(c, err.Error())
			return
		}
		respondStoreError(c, err, "add note")
		return
	}

	respondCreated(c, result.(*entities.BookNote))
}

// DeleteNote removes a note by ID. Missing notes are not an error.
// DELETE /api/notes/:id
func (nc *NotesController) DeleteNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := nc.store.DeleteNote(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "delete note")
		return
	}

	respondSuccess(c, "note deleted")
}

// ExportNotes renders a book's notes and progress as markdown.
// GET /api/books/:bookId/notes/export?title=...
func (nc *NotesController) ExportNotes(c *gin.Context) {
	bookID, ok := parseBookIDParam(c, "bookId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	bookNotes, err := nc.store.ListNotes(ctx, bookID)
	if err != nil {
		respondStoreError(c, err, "export notes")
		return
	}

	var readingProgress *entities.ReadingProgress
	if nc.progress != nil {
		readingProgress, err = nc.progress.GetProgress(ctx, bookID)
		if err != nil {
			respondStoreError(c, err, "export notes progress")
			return
		}
	}

	export := exporters.NotesExport{
		BookID:   bookID,
		Title:    strings.TrimSpace(c.Query("title")),
		Notes:    bookNotes,
		Progress: readingProgress,
	}
	content := exporters.GenerateNotesMarkdown(export)

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename()}))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}

func isNoteValidationError(err error) bool {
	return errors.Is(err, notes.ErrEmptyNote) ||
		errors.Is(err, notes.ErrMissingBookID) ||
		errors.Is(err, notes.ErrNegativePage) ||
		errors.Is(err, notes.ErrInvalidKind)
}
