package entities

// ImageLinks holds cover image URLs as returned by the catalog.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

// IndustryIdentifier is an ISBN or other identifier attached to a catalog record.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// CatalogBook is a book record as returned by the remote catalog.
// JSON field names follow the catalog's own naming so a stored copy is a
// verbatim snapshot of what the catalog returned.
type CatalogBook struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle,omitempty"`
	Authors             []string             `json:"authors,omitempty"`
	Description         string               `json:"description,omitempty"`
	Publisher           string               `json:"publisher,omitempty"`
	PublishedDate       string               `json:"publishedDate,omitempty"`
	PageCount           int                  `json:"pageCount,omitempty"`
	Categories          []string             `json:"categories,omitempty"`
	Language            string               `json:"language,omitempty"`
	ImageLinks          *ImageLinks          `json:"imageLinks,omitempty"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers,omitempty"`
}

// ISBN returns the ISBN-13 if present, otherwise the ISBN-10, otherwise "".
func (b CatalogBook) ISBN() string {
	var isbn10 string
	for _, id := range b.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}

// FavoriteBook is a favorited CatalogBook enriched at read time with the
// current reading progress. LastPage and LastUpdated are never persisted.
type FavoriteBook struct {
	CatalogBook
	LastPage    *int    `json:"lastPage"`
	LastUpdated *string `json:"lastUpdated"`
}
