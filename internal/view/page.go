package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/bookexplorer/bookexplorer/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// PageTemplate is the name the full page renders under
	PageTemplate  = "index.html"
	cardsTemplate = "cards"
)

// Page is everything the index template needs
type Page struct {
	Title     string
	SessionID string
	Query     catalog.Query
	Languages []Option
	Sorts     []Option
	Books     BookList
}

// NewPage snapshots a session into a Page
func NewPage(s *catalog.Session) Page {
	q := s.Query()
	return Page{
		Title:     PageTitle,
		SessionID: s.ID(),
		Query:     q,
		Languages: LanguageOptions(s.Languages(), s.Names(), q.Language),
		Sorts:     SortOptions(q.Sort),
		Books:     NewBookList(s.Books()),
	}
}

// Templates renders the page and its card grid fragment
type Templates struct {
	tmpl *template.Template
}

// ParseTemplates loads the embedded templates
func ParseTemplates() (*Templates, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Templates{tmpl: tmpl}, nil
}

// Render executes a named template
func (t *Templates) Render(w io.Writer, name string, data any) error {
	return t.tmpl.ExecuteTemplate(w, name, data)
}

// RenderCards returns the card grid fragment for list
func (t *Templates) RenderCards(list BookList) (string, error) {
	var buf bytes.Buffer
	if err := t.Render(&buf, cardsTemplate, list); err != nil {
		return "", err
	}
	return buf.String(), nil
}
