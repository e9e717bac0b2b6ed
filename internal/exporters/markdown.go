package exporters

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/bookhouse/internal/entities"
	"github.com/mrlokans/bookhouse/internal/utils"
)

// NotesExport is everything rendered into a book's notes document.
type NotesExport struct {
	BookID   string
	Title    string
	Notes    []entities.BookNote
	Progress *entities.ReadingProgress
}

// GenerateNotesMarkdown renders a book's notes (newest first, as stored) and
// its reading progress as an Obsidian-compatible markdown document.
func GenerateNotesMarkdown(export NotesExport) string {
	var builder strings.Builder

	title := export.ResolvedTitle()

	currentDateTime := time.Now().Format("2006-01-02")
	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: book_notes\n")
	fmt.Fprintf(&builder, "book_id: %s\n", export.BookID)
	fmt.Fprintf(&builder, "exported_at: %s\n", currentDateTime)
	fmt.Fprintf(&builder, "title: \"%s\"\n", strings.ReplaceAll(title, "\"", "\\\""))
	fmt.Fprintf(&builder, "notes: %d\n", len(export.Notes))
	fmt.Fprintf(&builder, "tags: [notes, books]\n")
	fmt.Fprintf(&builder, "---\n\n")

	if export.Progress != nil {
		fmt.Fprintf(&builder, "## Reading progress\n\n")
		if export.Progress.LastPage != nil {
			fmt.Fprintf(&builder, "- Last page: %d\n", *export.Progress.LastPage)
		}
		fmt.Fprintf(&builder, "- Updated: %s\n", formatStamp(export.Progress.UpdatedAt))
		if export.Progress.LastReflection != nil {
			fmt.Fprintf(&builder, "\n> %s\n", quote(*export.Progress.LastReflection))
		}
		fmt.Fprintf(&builder, "\n")
	}

	fmt.Fprintf(&builder, "## Notes\n\n")
	if len(export.Notes) == 0 {
		fmt.Fprintf(&builder, "_No notes yet._\n")
		return builder.String()
	}

	for _, note := range export.Notes {
		heading := note.Kind.Label()
		if note.Page != nil {
			heading = fmt.Sprintf("%s (p. %d)", heading, *note.Page)
		}
		fmt.Fprintf(&builder, "### %s · %s\n\n", heading, formatStamp(note.CreatedAt))
		if note.Kind == entities.NoteKindHighlight {
			fmt.Fprintf(&builder, "> %s\n\n", quote(note.Note))
		} else {
			fmt.Fprintf(&builder, "%s\n\n", note.Note)
		}
	}

	return builder.String()
}

// ResolvedTitle is the explicit title, else the first title snapshot found on
// a note, else "Untitled".
func (e NotesExport) ResolvedTitle() string {
	if title := strings.TrimSpace(e.Title); title != "" {
		return title
	}
	for _, note := range e.Notes {
		if note.Title != "" {
			return note.Title
		}
	}
	return "Untitled"
}

// Filename is a filesystem-safe name for the rendered document.
func (e NotesExport) Filename() string {
	title := e.ResolvedTitle()
	if title == "Untitled" {
		title = ""
	}
	return utils.NotesExportFilename(title, e.BookID)
}

func formatStamp(stamp string) string {
	t, err := time.Parse(entities.TimestampLayout, stamp)
	if err != nil {
		return stamp
	}
	return t.Format("2006-01-02 15:04")
}

func quote(text string) string {
	return strings.ReplaceAll(text, "\n", "\n> ")
}
