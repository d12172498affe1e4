package api

import (
	"context"
	"net/http"

	"github.com/bookexplorer/bookexplorer/internal/catalog"
	"github.com/bookexplorer/bookexplorer/internal/view"
	"github.com/labstack/echo/v4"
)

// BooksPayload is the book grid as JSON, optionally with its HTML fragment
type BooksPayload struct {
	view.BookList
	Query catalog.Query `json:"query"`
	HTML  string        `json:"html,omitempty"`
}

// LanguagesPayload lists the session's language codes and select options
type LanguagesPayload struct {
	Languages []string      `json:"languages"`
	Options   []view.Option `json:"options"`
}

// index renders the explorer page
func (s *Server) index(c echo.Context) error {
	session := sessionFrom(c)
	if err := s.applyQuery(c, session); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.Render(http.StatusOK, view.PageTemplate, view.NewPage(session))
}

// getBooks returns the session's current book cards
func (s *Server) getBooks(c echo.Context) error {
	session := sessionFrom(c)
	if err := s.applyQuery(c, session); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, BooksPayload{
		BookList: view.NewBookList(session.Books()),
		Query:    session.Query(),
	})
}

// getLanguages returns the session's available languages
func (s *Server) getLanguages(c echo.Context) error {
	session := sessionFrom(c)
	languages := session.Languages()

	return c.JSON(http.StatusOK, LanguagesPayload{
		Languages: languages,
		Options:   view.LanguageOptions(languages, session.Names(), session.Query().Language),
	})
}

// applyQuery moves the session to the state named by the request's
// search, language and sort parameters. Absent parameters keep their
// current value. Fetch failures are logged by the session and leave the
// previous books in place.
func (s *Server) applyQuery(c echo.Context, session *catalog.Session) error {
	current := session.Query()
	next, err := queryFromRequest(c, current)
	if err != nil {
		return err
	}

	ctx := context.WithoutCancel(c.Request().Context())
	if next.Search != current.Search {
		_ = session.SetSearch(ctx, next.Search)
	}
	if next.Language != current.Language {
		_ = session.SetLanguage(ctx, next.Language)
	}
	if next.Sort != current.Sort {
		_ = session.SetSort(ctx, next.Sort)
	}
	return nil
}

func queryFromRequest(c echo.Context, current catalog.Query) (catalog.Query, error) {
	next := current
	params := c.QueryParams()

	if params.Has("search") {
		next.Search = params.Get("search")
	}
	if params.Has("language") {
		next.Language = params.Get("language")
	}
	if params.Has("sort") {
		mode, err := catalog.ParseSortMode(params.Get("sort"))
		if err != nil {
			return current, err
		}
		next.Sort = mode
	}

	if err := next.Validate(); err != nil {
		return current, err
	}
	return next, nil
}
