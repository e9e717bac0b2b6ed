package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/mrlokans/bookhouse/internal/entities"
)

var (
	ErrEmptyQuery       = errors.New("search query is required")
	ErrInvalidScope     = errors.New("invalid search scope")
	ErrUnexpectedStatus = errors.New("unexpected catalog response status")
)

// Scope narrows a search to one field of the catalog record.
type Scope string

const (
	ScopeAll    Scope = "all"
	ScopeTitle  Scope = "title"
	ScopeAuthor Scope = "author"
	ScopeISBN   Scope = "isbn"
)

// ParseScope maps a user-supplied scope name to a Scope. An empty name means ScopeAll.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeTitle:
		return ScopeTitle, nil
	case ScopeAuthor:
		return ScopeAuthor, nil
	case ScopeISBN:
		return ScopeISBN, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
}

// ScopedQuery rewrites query with the catalog's field prefix for scope.
func ScopedQuery(query string, scope Scope) string {
	switch scope {
	case ScopeTitle:
		return "intitle:" + query
	case ScopeAuthor:
		return "inauthor:" + query
	case ScopeISBN:
		return "isbn:" + normalizeISBN(query)
	default:
		return query
	}
}

// Client searches the Google Books volumes API.
// It performs exactly one request per search: no retries, no paging.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
	userAgent   string
}

// NewClient creates a catalog client. apiKey may be empty.
// The client is not rate limited until SetRateLimit is called.
func NewClient(baseURL, apiKey, userAgent string) *Client {
	return &Client{
		httpClient:  &http.Client{},
		rateLimiter: rate.NewLimiter(rate.Inf, 0),
		baseURL:     baseURL,
		apiKey:      apiKey,
		userAgent:   userAgent,
	}
}

// SetRateLimit caps outgoing searches at perSecond with the given burst.
// A non-positive perSecond removes the limit.
func (c *Client) SetRateLimit(perSecond float64, burst int) {
	if perSecond <= 0 {
		c.rateLimiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	if burst < 1 {
		burst = 1
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Search returns the catalog records matching query within scope, in the
// order the catalog returned them. A response without items yields an empty
// slice; a non-2xx response is an error.
func (c *Client) Search(ctx context.Context, query string, scope Scope) ([]entities.CatalogBook, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	searchURL, err := c.buildSearchURL(ScopedQuery(query, scope))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	books := make([]entities.CatalogBook, 0, len(result.Items))
	for _, item := range result.Items {
		books = append(books, convertVolume(item))
	}
	return books, nil
}

func (c *Client) buildSearchURL(q string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse catalog url: %w", err)
	}
	params := u.Query()
	params.Set("q", q)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

func convertVolume(v volume) entities.CatalogBook {
	info := v.VolumeInfo
	book := entities.CatalogBook{
		ID:            v.ID,
		Title:         info.Title,
		Subtitle:      info.Subtitle,
		Authors:       info.Authors,
		Description:   info.Description,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		Language:      info.Language,
	}

	if info.ImageLinks != nil && (info.ImageLinks.Thumbnail != "" || info.ImageLinks.SmallThumbnail != "") {
		book.ImageLinks = &entities.ImageLinks{
			SmallThumbnail: info.ImageLinks.SmallThumbnail,
			Thumbnail:      info.ImageLinks.Thumbnail,
		}
	}

	for _, id := range info.IndustryIdentifiers {
		book.IndustryIdentifiers = append(book.IndustryIdentifiers, entities.IndustryIdentifier{
			Type:       id.Type,
			Identifier: id.Identifier,
		})
	}

	return book
}

// normalizeISBN removes hyphens and spaces from ISBN.
func normalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	return strings.TrimSpace(isbn)
}

// Google Books API response types (internal)

type volumesResponse struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	PageCount           int                  `json:"pageCount"`
	Categories          []string             `json:"categories"`
	Language            string               `json:"language"`
	ImageLinks          *imageLinks          `json:"imageLinks"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}
