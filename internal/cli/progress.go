package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/bookhouse/internal/entities"
)

type ProgressCommand struct {
	storeFlags

	Action         string
	BookID         string
	Title          string
	Page           int
	Reflection     string
	AlsoCreateNote bool

	Out io.Writer
}

func NewProgressCommand() *ProgressCommand {
	return &ProgressCommand{}
}

func (cmd *ProgressCommand) ParseFlags(args []string) error {
	fs := newFlagSet("progress", "Show or record reading progress for a book.",
		"progress -book zyTCAlFPjgYC",
		"progress -book zyTCAlFPjgYC -action save -page 120 -reflection \"Slow start\" -note",
	)
	cmd.storeFlags.register(fs)

	fs.StringVar(&cmd.Action, "action", "get", "One of: get, save")
	fs.StringVar(&cmd.BookID, "book", "", "Catalog book id (required)")
	fs.StringVar(&cmd.Title, "title", "", "Book title stored with the reflection note (save)")
	fs.IntVar(&cmd.Page, "page", unsetPage, "Last page read (save, optional)")
	fs.StringVar(&cmd.Reflection, "reflection", "", "Reflection text (save, optional)")
	fs.BoolVar(&cmd.AlsoCreateNote, "note", false, "Also record the reflection as a note (save)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.BookID) == "" {
		fs.Usage()
		return fmt.Errorf("book id is required")
	}
	if cmd.Action != "get" && cmd.Action != "save" {
		fs.Usage()
		return fmt.Errorf("unknown action: %s", cmd.Action)
	}

	return nil
}

func (cmd *ProgressCommand) Run() error {
	stores, err := cmd.open()
	if err != nil {
		return err
	}
	defer stores.Close()

	ctx, cancel := cmd.newContext()
	defer cancel()

	var readingProgress *entities.ReadingProgress
	if cmd.Action == "save" {
		readingProgress, err = stores.Progress.SaveProgress(ctx, entities.ProgressUpdate{
			BookID:         cmd.BookID,
			Title:          cmd.Title,
			Page:           optionalPage(cmd.Page),
			Reflection:     cmd.Reflection,
			AlsoCreateNote: cmd.AlsoCreateNote,
		})
		if err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}
	} else {
		readingProgress, err = stores.Progress.GetProgress(ctx, cmd.BookID)
		if err != nil {
			return fmt.Errorf("failed to load progress: %w", err)
		}
	}

	out := outputOrStdout(cmd.Out)
	if readingProgress == nil {
		fmt.Fprintf(out, "No progress recorded for %s\n", cmd.BookID)
		return nil
	}

	fmt.Fprintf(out, "Book:       %s\n", readingProgress.BookID)
	fmt.Fprintf(out, "Last page:  %s\n", formatPage(readingProgress.LastPage))
	if readingProgress.LastReflection != nil {
		fmt.Fprintf(out, "Reflection: %s\n", *readingProgress.LastReflection)
	}
	fmt.Fprintf(out, "Updated:    %s\n", readingProgress.UpdatedAt)
	return nil
}
