package view

import (
	"slices"
	"strings"

	"github.com/bookexplorer/bookexplorer/internal/catalog"
	"github.com/bookexplorer/bookexplorer/internal/gutendex"
)

const (
	PageTitle           = "Public Domain Book Explorer"
	PlaceholderCoverURL = "https://via.placeholder.com/150"
	UnavailableReadURL  = "#"
	NoResultsMessage    = "No books found"
	AllLanguagesLabel   = "All Languages"

	mimeJPEG  = "image/jpeg"
	mimeHTML  = "text/html"
	mimePlain = "text/plain"
)

// Card is the display form of one book
type Card struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	CoverURL  string `json:"coverUrl"`
	ReadURL   string `json:"readUrl"`
	Readable  bool   `json:"readable"`
	Downloads int    `json:"downloads"`
}

// NewCard derives a card from a catalog book
func NewCard(b gutendex.Book) Card {
	cover := b.Format(mimeJPEG)
	if cover == "" {
		cover = PlaceholderCoverURL
	}

	readURL := b.Format(mimeHTML)
	if readURL == "" {
		readURL = b.Format(mimePlain)
	}
	readable := readURL != ""
	if !readable {
		readURL = UnavailableReadURL
	}

	return Card{
		ID:        b.ID,
		Title:     b.Title,
		Authors:   strings.Join(b.AuthorNames(), ", "),
		CoverURL:  cover,
		ReadURL:   readURL,
		Readable:  readable,
		Downloads: b.DownloadCount,
	}
}

// BookList is the rendered result grid
type BookList struct {
	Cards   []Card `json:"cards"`
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`
}

// NewBookList builds cards for books. An empty list carries the
// no-results message instead of cards.
func NewBookList(books []gutendex.Book) BookList {
	cards := make([]Card, 0, len(books))
	for _, b := range books {
		cards = append(cards, NewCard(b))
	}

	list := BookList{Cards: cards}
	if len(cards) == 0 {
		list.Empty = true
		list.Message = NoResultsMessage
	}
	return list
}

// Option is one entry of a select control
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// LanguageOptions lists "All Languages" followed by each code's display name.
// A selected code missing from codes is appended so the active filter stays
// visible.
func LanguageOptions(codes []string, names catalog.LanguageNames, selected string) []Option {
	if selected != "" && selected != catalog.LanguageAll && !slices.Contains(codes, selected) {
		codes = append(slices.Clip(codes), selected)
	}

	opts := make([]Option, 0, len(codes)+1)
	opts = append(opts, Option{
		Value:    catalog.LanguageAll,
		Label:    AllLanguagesLabel,
		Selected: selected == catalog.LanguageAll,
	})
	for _, code := range codes {
		opts = append(opts, Option{
			Value:    code,
			Label:    names.DisplayName(code),
			Selected: selected == code,
		})
	}
	return opts
}

// SortOptions lists the sort control entries
func SortOptions(selected catalog.SortMode) []Option {
	return []Option{
		{Value: string(catalog.SortNone), Label: "Sort By...", Selected: selected == catalog.SortNone},
		{Value: string(catalog.SortPopularity), Label: "Popularity (Downloads)", Selected: selected == catalog.SortPopularity},
	}
}
