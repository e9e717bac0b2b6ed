package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/bookhouse/internal/entities"
)

type FavouritesCommand struct {
	storeFlags

	Action    string
	BookID    string
	Title     string
	Authors   string
	Thumbnail string

	Out io.Writer
}

func NewFavouritesCommand() *FavouritesCommand {
	return &FavouritesCommand{}
}

func (cmd *FavouritesCommand) ParseFlags(args []string) error {
	fs := newFlagSet("favourites", "List or change starred books.",
		"favourites",
		"favourites -action add -book zyTCAlFPjgYC -title Dune -authors \"Frank Herbert\"",
		"favourites -action remove -book zyTCAlFPjgYC",
		"favourites -action clear",
	)
	cmd.storeFlags.register(fs)

	fs.StringVar(&cmd.Action, "action", "list", "One of: list, add, remove, clear")
	fs.StringVar(&cmd.BookID, "book", "", "Catalog book id (add, remove)")
	fs.StringVar(&cmd.Title, "title", "", "Book title (add)")
	fs.StringVar(&cmd.Authors, "authors", "", "Comma separated authors (add)")
	fs.StringVar(&cmd.Thumbnail, "thumbnail", "", "Cover thumbnail URL (add)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd.Action {
	case "list", "clear":
	case "add", "remove":
		if strings.TrimSpace(cmd.BookID) == "" {
			fs.Usage()
			return fmt.Errorf("book id is required for %s", cmd.Action)
		}
	default:
		fs.Usage()
		return fmt.Errorf("unknown action: %s", cmd.Action)
	}

	return nil
}

func (cmd *FavouritesCommand) Run() error {
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
		result, err := stores.Favourites.AddFavorite(ctx, cmd.book())
		if err != nil {
			return fmt.Errorf("failed to add favourite: %w", err)
		}
		fmt.Fprintf(out, "%s: %s\n", cmd.BookID, result)

	case "remove":
		if err := stores.Favourites.RemoveFavorite(ctx, cmd.BookID); err != nil {
			return fmt.Errorf("failed to remove favourite: %w", err)
		}
		fmt.Fprintf(out, "Removed %s\n", cmd.BookID)

	case "clear":
		if err := stores.Favourites.ClearFavorites(ctx); err != nil {
			return fmt.Errorf("failed to clear favourites: %w", err)
		}
		fmt.Fprintln(out, "Cleared all favourites")

	default:
		books, err := stores.Favourites.ListFavorites(ctx)
		if err != nil {
			return fmt.Errorf("failed to list favourites: %w", err)
		}
		if len(books) == 0 {
			fmt.Fprintln(out, "No favourites yet")
			return nil
		}
		for _, book := range books {
			fmt.Fprintf(out, "%s  %s", book.ID, book.Title)
			if len(book.Authors) > 0 {
				fmt.Fprintf(out, " by %s", strings.Join(book.Authors, ", "))
			}
			if book.LastPage != nil {
				fmt.Fprintf(out, "  (p. %d)", *book.LastPage)
			}
			fmt.Fprintln(out)
		}
	}

	return nil
}

func (cmd *FavouritesCommand) book() entities.CatalogBook {
	book := entities.CatalogBook{
		ID:    strings.TrimSpace(cmd.BookID),
		Title: cmd.Title,
	}
	for _, author := range strings.Split(cmd.Authors, ",") {
		if author = strings.TrimSpace(author); author != "" {
			book.Authors = append(book.Authors, author)
		}
	}
	if cmd.Thumbnail != "" {
		book.ImageLinks = &entities.ImageLinks{Thumbnail: cmd.Thumbnail}
	}
	return book
}
