package catalog

import (
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LanguageAll is the language selection meaning "no language filter".
const LanguageAll = "all"

// SortMode selects the ordering requested from the catalog
type SortMode string

const (
	SortNone       SortMode = "none"
	SortPopularity SortMode = "popularity"
)

// popularSortParam is the catalog's name for descending download count.
const popularSortParam = "popular"

// ParseSortMode maps a control value to a SortMode. Empty means SortNone.
func ParseSortMode(v string) (SortMode, error) {
	switch SortMode(strings.TrimSpace(v)) {
	case "", SortNone:
		return SortNone, nil
	case SortPopularity:
		return SortPopularity, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", v)
}

// Query is the filter state read together whenever books are fetched
type Query struct {
	Search   string   `json:"search"`
	Language string   `json:"language"`
	Sort     SortMode `json:"sort"`
}

// DefaultQuery is the state a new session starts with
func DefaultQuery() Query {
	return Query{
		Search:   "",
		Language: LanguageAll,
		Sort:     SortNone,
	}
}

// Validate checks the fields a caller can set from outside
func (q Query) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Language, validation.Required, validation.Length(1, 32)),
		validation.Field(&q.Sort, validation.Required, validation.In(SortNone, SortPopularity)),
	)
}

// Params builds the catalog request parameters. A parameter is present
// only when its filter is active.
func (q Query) Params() url.Values {
	params := url.Values{}

	if search := strings.TrimSpace(q.Search); search != "" {
		params.Set("search", search)
	}

	if q.Language != LanguageAll {
		params.Set("languages", q.Language)
	}

	if q.Sort == SortPopularity {
		params.Set("sort", popularSortParam)
	}

	return params
}
