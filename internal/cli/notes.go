package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/bookhouse/internal/entities"
	"github.com/mrlokans/bookhouse/internal/exporters"
)

type NotesCommand struct {
	storeFlags

	Action     string
	BookID     string
	Title      string
	Text       string
	Page       int
	Kind       string
	NoteID     uint
	OutputFile string
	OutputDir  string

	Out io.Writer
}

func NewNotesCommand() *NotesCommand {
	return &NotesCommand{}
}

func (cmd *NotesCommand) ParseFlags(args []string) error {
	fs := newFlagSet("notes", "List, add, delete or export the notes of a book.",
		"notes -book zyTCAlFPjgYC",
		"notes -book zyTCAlFPjgYC -action add -text \"Fear is the mind-killer\" -page 12 -kind highlight",
		"notes -action delete -id 3",
		"notes -book zyTCAlFPjgYC -action export -title Dune -o dune-notes.md",
	)
	cmd.storeFlags.register(fs)

	fs.StringVar(&cmd.Action, "action", "list", "One of: list, add, delete, export")
	fs.StringVar(&cmd.BookID, "book", "", "Catalog book id")
	fs.StringVar(&cmd.Title, "title", "", "Book title stored with the note")
	fs.StringVar(&cmd.Text, "text", "", "Note text (add)")
	fs.IntVar(&cmd.Page, "page", unsetPage, "Page number (add, optional)")
	fs.StringVar(&cmd.Kind, "kind", string(entities.NoteKindNote), "Note kind: note, highlight or reflection (add)")
	fs.UintVar(&cmd.NoteID, "id", 0, "Note id (delete)")
	fs.StringVar(&cmd.OutputFile, "o", "", "Write the export to this file instead of stdout (export)")
	fs.StringVar(&cmd.OutputDir, "dir", "", "Write the export into this directory, named after the book (export)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd.Action {
	case "list", "add", "export":
		if strings.TrimSpace(cmd.BookID) == "" {
			fs.Usage()
			return fmt.Errorf("book id is required for %s", cmd.Action)
		}
	case "delete":
		if cmd.NoteID == 0 {
			fs.Usage()
			return fmt.Errorf("note id is required for delete")
		}
	default:
		fs.Usage()
		return fmt.Errorf("unknown action: %s", cmd.Action)
	}

	return nil
}

func (cmd *NotesCommand) Run() error {
	stores, err := cmd.open()
	if err != nil {
		return err
	}
	defer stores.Close()

	ctx, cancel := cmd.newContext()
	defer cancel()

	out := outputOrStdout(cmd.Out)

	switch cmd.Action {
	case "add":
		note, err := stores.Notes.AddNote(ctx, entities.NewNote{
			BookID: cmd.BookID,
			Title:  cmd.Title,
			Text:   cmd.Text,
			Page:   optionalPage(cmd.Page),
			Kind:   entities.NoteKind(cmd.Kind),
		})
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}
		fmt.Fprintf(out, "Added %s #%d to %s\n", note.Kind, note.ID, note.BookID)

	case "delete":
		if err := stores.Notes.DeleteNote(ctx, cmd.NoteID); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		fmt.Fprintf(out, "Deleted note #%d\n", cmd.NoteID)

	case "export":
		bookNotes, err := stores.Notes.ListNotes(ctx, cmd.BookID)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		readingProgress, err := stores.Progress.GetProgress(ctx, cmd.BookID)
		if err != nil {
			return fmt.Errorf("failed to load progress: %w", err)
		}
		export := exporters.NotesExport{
			BookID:   cmd.BookID,
			Title:    cmd.Title,
			Notes:    bookNotes,
			Progress: readingProgress,
		}
		content := exporters.GenerateNotesMarkdown(export)

		target := cmd.OutputFile
		if target == "" && cmd.OutputDir != "" {
			target = filepath.Join(cmd.OutputDir, export.Filename())
		}
		if target == "" {
			fmt.Fprint(out, content)
			return nil
		}
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintf(out, "Exported %d notes to %s\n", len(bookNotes), target)

	default:
		bookNotes, err := stores.Notes.ListNotes(ctx, cmd.BookID)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		if len(bookNotes) == 0 {
			fmt.Fprintf(out, "No notes for %s\n", cmd.BookID)
			return nil
		}
		for _, note := range bookNotes {
			fmt.Fprintf(out, "#%d  %s  p.%s  %s  %s\n",
				note.ID, note.CreatedAt, formatPage(note.Page), note.Kind, note.Note)
		}
	}

	return nil
}
