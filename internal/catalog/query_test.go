package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryParams(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  url.Values
	}{
		{
			name:  "defaults carry no parameters",
			query: DefaultQuery(),
			want:  url.Values{},
		},
		{
			name:  "search is trimmed",
			query: Query{Search: "  tale of two cities \t", Language: LanguageAll, Sort: SortNone},
			want:  url.Values{"search": {"tale of two cities"}},
		},
		{
			name:  "whitespace-only search is dropped",
			query: Query{Search: " \t\n ", Language: LanguageAll, Sort: SortNone},
			want:  url.Values{},
		},
		{
			name:  "language code passes through exactly",
			query: Query{Language: "fr", Sort: SortNone},
			want:  url.Values{"languages": {"fr"}},
		},
		{
			name:  "popularity maps to popular",
			query: Query{Language: LanguageAll, Sort: SortPopularity},
			want:  url.Values{"sort": {"popular"}},
		},
		{
			name:  "dickens in english unsorted",
			query: Query{Search: "dickens", Language: "en", Sort: SortNone},
			want:  url.Values{"search": {"dickens"}, "languages": {"en"}},
		},
		{
			name:  "everything set",
			query: Query{Search: "moby", Language: "en", Sort: SortPopularity},
			want:  url.Values{"search": {"moby"}, "languages": {"en"}, "sort": {"popular"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Params())
		})
	}
}

func TestQueryParamsPopularOnly(t *testing.T) {
	params := Query{Search: "", Language: LanguageAll, Sort: SortPopularity}.Params()

	assert.Equal(t, url.Values{"sort": {"popular"}}, params)
	assert.NotContains(t, params, "search")
	assert.NotContains(t, params, "languages")
}

func TestParseSortMode(t *testing.T) {
	mode, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, mode)

	mode, err = ParseSortMode("popularity")
	require.NoError(t, err)
	assert.Equal(t, SortPopularity, mode)

	_, err = ParseSortMode("popular")
	assert.Error(t, err)
}

func TestQueryValidate(t *testing.T) {
	assert.NoError(t, DefaultQuery().Validate())
	assert.NoError(t, Query{Search: "x", Language: "en", Sort: SortPopularity}.Validate())

	assert.Error(t, Query{Language: "", Sort: SortNone}.Validate())
	assert.Error(t, Query{Language: LanguageAll, Sort: "downloads"}.Validate())
}
