package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mrlokans/bookhouse/internal/catalog"
	"github.com/mrlokans/bookhouse/internal/config"
)

type SearchCommand struct {
	Query     string
	Scope     string
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration

	Out io.Writer
}

func NewSearchCommand() *SearchCommand {
	return &SearchCommand{}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := newFlagSet("search", "Search the public book catalog.",
		"search -q dune",
		"search -q \"Frank Herbert\" -scope author",
		"search -q 978-0441013593 -scope isbn",
	)

	fs.StringVar(&cmd.Query, "q", "", "Search query (required)")
	fs.StringVar(&cmd.Scope, "scope", string(catalog.ScopeAll), "Search scope: all, title, author or isbn")
	fs.StringVar(&cmd.BaseURL, "catalog-url", cfg.Catalog.BaseURL, "Catalog volumes endpoint")
	fs.StringVar(&cmd.APIKey, "api-key", cfg.Catalog.APIKey, "Catalog API key (optional)")
	fs.StringVar(&cmd.UserAgent, "user-agent", cfg.Catalog.UserAgent, "User-Agent sent to the catalog")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "Request timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.Query) == "" {
		fs.Usage()
		return fmt.Errorf("query is required")
	}

	return nil
}

func (cmd *SearchCommand) Run() error {
	scope, err := catalog.ParseScope(cmd.Scope)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	client := catalog.NewClient(cmd.BaseURL, cmd.APIKey, cmd.UserAgent)
	books, err := client.Search(ctx, cmd.Query, scope)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := outputOrStdout(cmd.Out)
	if len(books) == 0 {
		fmt.Fprintf(out, "No books found for %q\n", cmd.Query)
		return nil
	}

	fmt.Fprintf(out, "Found %d books for %q (scope: %s)\n\n", len(books), cmd.Query, scope)
	for _, book := range books {
		fmt.Fprintf(out, "%s  %s", book.ID, book.Title)
		if len(book.Authors) > 0 {
			fmt.Fprintf(out, " by %s", strings.Join(book.Authors, ", "))
		}
		if book.PublishedDate != "" {
			fmt.Fprintf(out, " (%s)", book.PublishedDate)
		}
		if isbn := book.ISBN(); isbn != "" {
			fmt.Fprintf(out, " [ISBN %s]", isbn)
		}
		fmt.Fprintln(out)
	}
	return nil
}
