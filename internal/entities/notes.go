package entities

import (
	"time"
)

// TimestampLayout is the ISO-8601 layout used for every stored timestamp
// (UTC with millisecond precision, e.g. 2024-06-15T14:30:00.000Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type NoteKind string

const (
	NoteKindNote       NoteKind = "note"
	NoteKindHighlight  NoteKind = "highlight"
	NoteKindReflection NoteKind = "reflection"
)

// Valid reports whether k is one of the known note kinds.
func (k NoteKind) Valid() bool {
	switch k {
	case NoteKindNote, NoteKindHighlight, NoteKindReflection:
		return true
	}
	return false
}

// Label returns a human-readable name for the kind.
func (k NoteKind) Label() string {
	switch k {
	case NoteKindHighlight:
		return "Highlight"
	case NoteKindReflection:
		return "Reflection"
	default:
		return "Note"
	}
}

// BookNote is an immutable annotation attached to a catalog book.
// Title is a snapshot of the book title at the time the note was written.
type BookNote struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID    string   `gorm:"column:book_id;not null;index" json:"bookId"`
	Title     string   `gorm:"column:title" json:"title"`
	Note      string   `gorm:"column:note;not null" json:"note"`
	CreatedAt string   `gorm:"column:created_at;not null" json:"createdAt"`
	Page      *int     `gorm:"column:page" json:"page"`
	Kind      NoteKind `gorm:"column:kind" json:"kind"`
}

func (BookNote) TableName() string {
	return "book_notes"
}

// CreatedTime parses CreatedAt, returning the zero time if it is malformed.
func (n BookNote) CreatedTime() time.Time {
	t, err := time.Parse(TimestampLayout, n.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ReadingProgress is the last known reading position for a book.
// There is at most one row per BookID.
type ReadingProgress struct {
	BookID         string  `gorm:"column:book_id;primaryKey" json:"bookId"`
	LastPage       *int    `gorm:"column:last_page" json:"lastPage"`
	LastReflection *string `gorm:"column:last_reflection" json:"lastReflection"`
	UpdatedAt      string  `gorm:"column:updated_at;not null" json:"updatedAt"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}

// NewNote carries the caller-supplied fields for creating a BookNote.
type NewNote struct {
	BookID string
	Title  string
	Text   string
	Page   *int
	Kind   NoteKind
}

// ProgressUpdate carries the caller-supplied fields for saving reading progress.
// When AlsoCreateNote is set and Reflection is non-blank, a reflection note is
// written in the same transaction.
type ProgressUpdate struct {
	BookID         string
	Title          string
	Page           *int
	Reflection     string
	AlsoCreateNote bool
}

// FormatTimestamp renders t in TimestampLayout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
