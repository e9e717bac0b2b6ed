// Package favourites stores the user's favorite books.
//
// Favorites are kept as a single JSON array of catalog records under one key
// in the settings key-value store. Each entry is a snapshot of the catalog
// record at the time it was favorited and is never refreshed. Listing joins
// each entry with its current reading progress; that join is computed on read
// and never written back.
//
// # Concurrency
//
// Every write is a read-modify-write of the whole blob with no transaction or
// lock around it. Two concurrent writers can lose an update (last write wins).
// Callers that need stronger guarantees must serialize writes themselves.
//
// # Usage
//
//	repo := favourites.NewRepository(settings.NewRepository(db), progress.NewRepository(db))
//	result, err := repo.AddFavorite(ctx, book)
//	list, err := repo.ListFavorites(ctx)
package favourites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/bookhouse/internal/entities"
)

var ErrMissingBookID = errors.New("book id is required")

// AddResult reports whether AddFavorite changed the collection.
type AddResult string

const (
	AddResultAdded          AddResult = "added"
	AddResultAlreadyPresent AddResult = "already_present"
)

// KeyValueStore is the blob storage used for the favorites collection.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ProgressLookup supplies reading progress for enrichment.
type ProgressLookup interface {
	GetProgressForBooks(ctx context.Context, bookIDs []string) (map[string]entities.ReadingProgress, error)
}

// Repository handles favorites persistence.
type Repository struct {
	store    KeyValueStore
	progress ProgressLookup
	key      string
}

// NewRepository creates a new favourites repository.
func NewRepository(store KeyValueStore, progress ProgressLookup) *Repository {
	return &Repository{
		store:    store,
		progress: progress,
		key:      entities.SettingKeyFavorites,
	}
}

// ListFavorites returns favorites in insertion order, each enriched with the
// book's current last page and update time when progress exists.
func (r *Repository) ListFavorites(ctx context.Context) ([]entities.FavoriteBook, error) {
	books, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(books))
	for i, book := range books {
		ids[i] = book.ID
	}

	progressByBook, err := r.progress.GetProgressForBooks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load progress for favorites: %w", err)
	}

	favorites := make([]entities.FavoriteBook, len(books))
	for i, book := range books {
		favorites[i] = entities.FavoriteBook{CatalogBook: book}
		if p, ok := progressByBook[book.ID]; ok {
			favorites[i].LastPage = p.LastPage
			updated := p.UpdatedAt
			favorites[i].LastUpdated = &updated
		}
	}
	return favorites, nil
}

// AddFavorite appends book unless a favorite with the same ID already exists.
func (r *Repository) AddFavorite(ctx context.Context, book entities.CatalogBook) (AddResult, error) {
	if strings.TrimSpace(book.ID) == "" {
		return "", ErrMissingBookID
	}

	books, err := r.load(ctx)
	if err != nil {
		return "", err
	}

	for _, existing := range books {
		if existing.ID == book.ID {
			return AddResultAlreadyPresent, nil
		}
	}

	if err := r.save(ctx, append(books, book)); err != nil {
		return "", err
	}
	return AddResultAdded, nil
}

// RemoveFavorite removes the favorite with the given ID, if present.
func (r *Repository) RemoveFavorite(ctx context.Context, id string) error {
	books, err := r.load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]entities.CatalogBook, 0, len(books))
	for _, book := range books {
		if book.ID != id {
			remaining = append(remaining, book)
		}
	}
	if len(remaining) == len(books) {
		return nil
	}

	return r.save(ctx, remaining)
}

// ClearFavorites removes every favorite.
func (r *Repository) ClearFavorites(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}

// load reads the stored collection. A missing or unparseable blob is an
// empty collection.
func (r *Repository) load(ctx context.Context) ([]entities.CatalogBook, error) {
	raw, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return []entities.CatalogBook{}, nil
	}

	var books []entities.CatalogBook
	if err := json.Unmarshal([]byte(raw), &books); err != nil {
		log.Printf("Favourites: stored collection is unreadable, treating as empty: %v", err)
		return []entities.CatalogBook{}, nil
	}
	if books == nil {
		books = []entities.CatalogBook{}
	}
	return books, nil
}

// save writes plain catalog records; enrichment fields never reach the blob.
func (r *Repository) save(ctx context.Context, books []entities.CatalogBook) error {
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}
