package view

import (
	"testing"

	"github.com/bookexplorer/bookexplorer/internal/catalog"
	"github.com/bookexplorer/bookexplorer/internal/gutendex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCardUsesFormats(t *testing.T) {
	card := NewCard(gutendex.Book{
		ID:    98,
		Title: "A Tale of Two Cities",
		Authors: []gutendex.Person{
			{Name: "Dickens, Charles"},
			{Name: "Browne, Hablot K."},
		},
		Formats: map[string]string{
			"image/jpeg": "https://example.org/98.jpg",
			"text/html":  "https://example.org/98.html",
			"text/plain": "https://example.org/98.txt",
		},
		DownloadCount: 1234,
	})

	assert.Equal(t, Card{
		ID:        98,
		Title:     "A Tale of Two Cities",
		Authors:   "Dickens, Charles, Browne, Hablot K.",
		CoverURL:  "https://example.org/98.jpg",
		ReadURL:   "https://example.org/98.html",
		Readable:  true,
		Downloads: 1234,
	}, card)
}

func TestNewCardFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		formats      map[string]string
		wantCover    string
		wantRead     string
		wantReadable bool
	}{
		{
			name:         "plain text when html is missing",
			formats:      map[string]string{"text/plain": "https://example.org/1.txt"},
			wantCover:    PlaceholderCoverURL,
			wantRead:     "https://example.org/1.txt",
			wantReadable: true,
		},
		{
			name:         "no readable format",
			formats:      map[string]string{"application/epub+zip": "https://example.org/1.epub"},
			wantCover:    PlaceholderCoverURL,
			wantRead:     UnavailableReadURL,
			wantReadable: false,
		},
		{
			name:         "nil formats",
			formats:      nil,
			wantCover:    PlaceholderCoverURL,
			wantRead:     UnavailableReadURL,
			wantReadable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCard(gutendex.Book{ID: 1, Formats: tt.formats})
			assert.Equal(t, tt.wantCover, card.CoverURL)
			assert.Equal(t, tt.wantRead, card.ReadURL)
			assert.Equal(t, tt.wantReadable, card.Readable)
		})
	}
}

func TestNewCardWithoutAuthors(t *testing.T) {
	assert.Empty(t, NewCard(gutendex.Book{ID: 1}).Authors)
}

func TestNewBookList(t *testing.T) {
	empty := NewBookList([]gutendex.Book{})
	assert.True(t, empty.Empty)
	assert.Empty(t, empty.Cards)
	assert.NotNil(t, empty.Cards)
	assert.Equal(t, NoResultsMessage, empty.Message)

	list := NewBookList([]gutendex.Book{{ID: 1}, {ID: 2}})
	assert.False(t, list.Empty)
	assert.Empty(t, list.Message)
	require.Len(t, list.Cards, 2)
	assert.Equal(t, 2, list.Cards[1].ID)
}

func TestLanguageOptions(t *testing.T) {
	opts := LanguageOptions([]string{"en", "eo"}, catalog.DefaultLanguageNames(), "eo")

	assert.Equal(t, []Option{
		{Value: "all", Label: "All Languages"},
		{Value: "en", Label: "English"},
		{Value: "eo", Label: "EO", Selected: true},
	}, opts)
}

func TestLanguageOptionsKeepsSelectionOutsideSample(t *testing.T) {
	codes := []string{"en", "fr"}
	opts := LanguageOptions(codes, catalog.DefaultLanguageNames(), "fi")

	assert.Equal(t, []Option{
		{Value: "all", Label: "All Languages"},
		{Value: "en", Label: "English"},
		{Value: "fr", Label: "French"},
		{Value: "fi", Label: "Finnish", Selected: true},
	}, opts)
	assert.Equal(t, []string{"en", "fr"}, codes)
}

func TestLanguageOptionsWithoutLanguages(t *testing.T) {
	opts := LanguageOptions(nil, catalog.DefaultLanguageNames(), catalog.LanguageAll)

	assert.Equal(t, []Option{{Value: "all", Label: "All Languages", Selected: true}}, opts)
}

func TestSortOptions(t *testing.T) {
	opts := SortOptions(catalog.SortPopularity)

	require.Len(t, opts, 2)
	assert.False(t, opts[0].Selected)
	assert.True(t, opts[1].Selected)
	assert.Equal(t, "popularity", opts[1].Value)
}
