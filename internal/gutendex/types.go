package gutendex

// BooksResponse represents a page of results from the /books endpoint
type BooksResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Book  `json:"results"`
}

// Book represents a single book in the catalog
type Book struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Authors       []Person          `json:"authors"`
	Translators   []Person          `json:"translators,omitempty"`
	Subjects      []string          `json:"subjects,omitempty"`
	Bookshelves   []string          `json:"bookshelves,omitempty"`
	Languages     []string          `json:"languages"`
	Copyright     *bool             `json:"copyright"`
	MediaType     string            `json:"media_type,omitempty"`
	Formats       map[string]string `json:"formats"`
	DownloadCount int               `json:"download_count"`
}

// Person is an author or translator
type Person struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

// Format returns the URL for a MIME type, or "" if the book has none
func (b Book) Format(mimeType string) string {
	return b.Formats[mimeType]
}

// AuthorNames returns the author names in catalog order
func (b Book) AuthorNames() []string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	return names
}
