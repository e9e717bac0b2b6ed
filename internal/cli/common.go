package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/bookhouse/internal/config"
	"github.com/mrlokans/bookhouse/internal/entrypoint"
)

// storeFlags are shared by every command that touches the local database.
type storeFlags struct {
	DatabasePath string
	BusyTimeout  time.Duration
	Timeout      time.Duration
}

func (f *storeFlags) register(fs *flag.FlagSet) {
	cfg := config.NewConfig()
	fs.StringVar(&f.DatabasePath, "db", cfg.Database.Path, "Path to the database file")
	fs.DurationVar(&f.BusyTimeout, "busy-timeout", cfg.Database.BusyTimeout, "How long a write waits on a locked database")
	fs.DurationVar(&f.Timeout, "timeout", 30*time.Second, "Overall command timeout")
}

func (f *storeFlags) open() (*entrypoint.Stores, error) {
	return entrypoint.OpenStores(f.DatabasePath, f.BusyTimeout)
}

func (f *storeFlags) newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), f.Timeout)
}

func newFlagSet(name, summary string, examples ...string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s [options]\n\n", os.Args[0], name)
		fmt.Fprintf(os.Stderr, "%s\n\n", summary)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		if len(examples) > 0 {
			fmt.Fprintf(os.Stderr, "\nExamples:\n")
			for _, example := range examples {
				fmt.Fprintf(os.Stderr, "  %s %s\n", os.Args[0], example)
			}
		}
	}
	return fs
}

func outputOrStdout(out io.Writer) io.Writer {
	if out == nil {
		return os.Stdout
	}
	return out
}

// unsetPage is the flag default meaning "no page given".
const unsetPage = -1

func optionalPage(page int) *int {
	if page == unsetPage {
		return nil
	}
	return &page
}

func formatPage(page *int) string {
	if page == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *page)
}
