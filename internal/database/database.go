package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed schema.sql
var schemaSQL string

// DefaultBusyTimeout bounds how long a write waits on a locked database.
const DefaultBusyTimeout = 5 * time.Second

// ErrStoreBusy is returned (wrapped) when SQLite reports the database as
// busy or locked after the busy timeout has elapsed.
var ErrStoreBusy = errors.New("store busy")

type Options struct {
	BusyTimeout time.Duration
	LogLevel    logger.LogLevel
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the database at dbPath with default options.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(dbPath, Options{})
}

// Open opens (creating if needed) the SQLite database at dbPath, switches it to
// WAL mode with a bounded busy timeout and ensures the schema exists.
func Open(dbPath string, opts Options) (*Database, error) {
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = DefaultBusyTimeout
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	db, err := gorm.Open(sqlite.Open(buildDSN(dbPath, opts.BusyTimeout)), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.configure(opts.BusyTimeout); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.Exec(schemaSQL).Error; err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

// buildDSN appends driver parameters so that every pooled connection gets the
// same busy timeout, and write transactions take the write lock up front.
func buildDSN(dbPath string, busyTimeout time.Duration) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_journal_mode=WAL&_busy_timeout=%d&_txlock=immediate",
		dbPath, sep, busyTimeout.Milliseconds())
}

func (d *Database) configure(busyTimeout time.Duration) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if err := d.DB.Exec(pragma).Error; err != nil {
			return fmt.Errorf("exec %q: %w", pragma, err)
		}
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the underlying connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Checkpoint folds the write-ahead log back into the main database file.
func (d *Database) Checkpoint(ctx context.Context) error {
	return ClassifyError(d.DB.WithContext(ctx).Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error)
}

// ClassifyError wraps SQLite busy/locked failures with ErrStoreBusy so that
// callers can tell contention apart from other store failures.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %w", ErrStoreBusy, err)
	}
	return err
}
