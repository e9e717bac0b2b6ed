// Package notes provides database operations for book notes.
//
// Notes are an append-only log per book: they are created and deleted, never
// updated. Each note carries a snapshot of the book title at the time it was
// written.
//
// # Usage
//
//	repo := notes.NewRepository(db)
//	note, err := repo.AddNote(ctx, entities.NewNote{BookID: "b1", Title: "Dune", Text: "Great opening"})
//	list, err := repo.ListNotes(ctx, "b1")
package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookhouse/internal/database"
	"github.com/mrlokans/bookhouse/internal/entities"
)

var (
	ErrEmptyNote     = errors.New("note text is required")
	ErrMissingBookID = errors.New("book id is required")
	ErrNegativePage  = errors.New("page must not be negative")
	ErrInvalidKind   = errors.New("invalid note kind")
)

// Repository handles all book note database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// ListNotes returns every note for a book, newest first.
func (r *Repository) ListNotes(ctx context.Context, bookID string) ([]entities.BookNote, error) {
	notes := []entities.BookNote{}
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("id DESC").
		Find(&notes).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return notes, nil
}

// AddNote validates and inserts a note in its own transaction.
func (r *Repository) AddNote(ctx context.Context, input entities.NewNote) (*entities.BookNote, error) {
	note, err := BuildNote(input, r.now())
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(note).Error
	})
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	return note, nil
}

// DeleteNote removes a note by ID. Deleting a missing note is not an error.
func (r *Repository) DeleteNote(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.BookNote{}).Error
	return database.ClassifyError(err)
}

// BuildNote validates input and returns the row to insert. It never touches
// the store, so a rejected note leaves no trace.
func BuildNote(input entities.NewNote, now time.Time) (*entities.BookNote, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyNote
	}
	if strings.TrimSpace(input.BookID) == "" {
		return nil, ErrMissingBookID
	}
	if input.Page != nil && *input.Page < 0 {
		return nil, ErrNegativePage
	}

	kind := input.Kind
	if kind == "" {
		kind = entities.NoteKindNote
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	return &entities.BookNote{
		BookID:    input.BookID,
		Title:     input.Title,
		Note:      text,
		CreatedAt: entities.FormatTimestamp(now),
		Page:      copyPage(input.Page),
		Kind:      kind,
	}, nil
}

func copyPage(page *int) *int {
	if page == nil {
		return nil
	}
	p := *page
	return &p
}
