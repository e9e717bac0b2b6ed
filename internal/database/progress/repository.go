// Package progress provides database operations for per-book reading progress.
//
// A book is either without progress or has exactly one reading_progress row.
// SaveProgress is the only transition: it inserts the row on first save and
// replaces it in place on every later save. Rows are never deleted.
package progress

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookhouse/internal/database"
	"github.com/mrlokans/bookhouse/internal/database/notes"
	"github.com/mrlokans/bookhouse/internal/entities"
)

var (
	ErrMissingBookID = errors.New("book id is required")
	ErrNegativePage  = errors.New("page must not be negative")
)

// Repository handles reading progress database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// GetProgress returns the progress row for a book, or nil if none exists.
func (r *Repository) GetProgress(ctx context.Context, bookID string) (*entities.ReadingProgress, error) {
	var rows []entities.ReadingProgress
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// GetProgressForBooks returns progress rows keyed by book ID. Books without
// progress are absent from the map.
func (r *Repository) GetProgressForBooks(ctx context.Context, bookIDs []string) (map[string]entities.ReadingProgress, error) {
	result := make(map[string]entities.ReadingProgress, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	var rows []entities.ReadingProgress
	if err := r.db.WithContext(ctx).Where("book_id IN ?", bookIDs).Find(&rows).Error; err != nil {
		return nil, database.ClassifyError(err)
	}
	for _, row := range rows {
		result[row.BookID] = row
	}
	return result, nil
}

// SaveProgress upserts the progress row for a book. When AlsoCreateNote is set
// and the reflection is not blank, a reflection note with the same page, text
// and timestamp is inserted in the same transaction.
func (r *Repository) SaveProgress(ctx context.Context, update entities.ProgressUpdate) (*entities.ReadingProgress, error) {
	if strings.TrimSpace(update.BookID) == "" {
		return nil, ErrMissingBookID
	}
	if update.Page != nil && *update.Page < 0 {
		return nil, ErrNegativePage
	}

	now := r.now()
	row := &entities.ReadingProgress{
		BookID:    update.BookID,
		UpdatedAt: entities.FormatTimestamp(now),
	}
	if update.Page != nil {
		page := *update.Page
		row.LastPage = &page
	}
	reflection := strings.TrimSpace(update.Reflection)
	if reflection != "" {
		row.LastReflection = &reflection
	}

	var reflectionNote *entities.BookNote
	if update.AlsoCreateNote && reflection != "" {
		note, err := notes.BuildNote(entities.NewNote{
			BookID: update.BookID,
			Title:  update.Title,
			Text:   reflection,
			Page:   update.Page,
			Kind:   entities.NoteKindReflection,
		}, now)
		if err != nil {
			return nil, err
		}
		reflectionNote = note
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Select("*") so that nil page/reflection overwrite previous values.
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "book_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_page", "last_reflection", "updated_at"}),
		}).Select("*").Create(row).Error
		if err != nil {
			return err
		}

		if reflectionNote != nil {
			return tx.Create(reflectionNote).Error
		}
		return nil
	})
	if err != nil {
		return nil, database.ClassifyError(err)
	}

	return row, nil
}
