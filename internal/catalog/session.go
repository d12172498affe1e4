package catalog

import (
	"context"
	"errors"
	"net/url"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bookexplorer/bookexplorer/internal/gutendex"
	"github.com/rs/zerolog/log"
)

// ErrStaleResponse is returned by Refresh when DiscardStale is set and a
// newer request was issued while this one was in flight.
var ErrStaleResponse = errors.New("response superseded by a newer request")

// Catalog is the remote book source a session reads from
type Catalog interface {
	ListBooks(ctx context.Context, params url.Values) (*gutendex.BooksResponse, error)
}

// ChangeKind names the part of a session that changed
type ChangeKind string

const (
	ChangeBooks     ChangeKind = "books"
	ChangeLanguages ChangeKind = "languages"
)

// Listener is called after a session's books or languages are replaced.
// It runs on the goroutine that completed the fetch.
type Listener func(s *Session, kind ChangeKind)

// SessionOptions configures new sessions
type SessionOptions struct {
	Names LanguageNames

	// DiscardStale applies a book response only if no newer request has
	// been issued since. When false the last response to arrive wins.
	DiscardStale bool

	Listener Listener
}

// Session holds the UI state of one browser: the query, the displayed
// books and the available languages.
type Session struct {
	id           string
	catalog      Catalog
	names        LanguageNames
	discardStale bool
	listener     Listener

	mu        sync.RWMutex
	query     Query
	books     []gutendex.Book
	languages []string

	issued    atomic.Uint64
	lastSeen  atomic.Int64
	startOnce sync.Once
	langOnce  sync.Once
}

// NewSession creates a session with the default query and empty lists
func NewSession(id string, catalog Catalog, opts SessionOptions) *Session {
	names := opts.Names
	if names == nil {
		names = DefaultLanguageNames()
	}

	s := &Session{
		id:           id,
		catalog:      catalog,
		names:        names,
		discardStale: opts.DiscardStale,
		listener:     opts.Listener,
		query:        DefaultQuery(),
		books:        []gutendex.Book{},
		languages:    []string{},
	}
	s.Touch()
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Names() LanguageNames {
	return s.names
}

// Touch marks the session as in use
func (s *Session) Touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// LastSeen reports when the session was last touched
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Query returns a snapshot of the current filter state
func (s *Session) Query() Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Books returns a copy of the displayed book list
func (s *Session) Books() []gutendex.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.books)
}

// Languages returns a copy of the available language codes
func (s *Session) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.languages)
}

// Start runs the startup routine once: the language load and the initial
// book fetch, concurrently. It returns when both have finished.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.LoadLanguages(ctx)
		}()
		go func() {
			defer wg.Done()
			_ = s.Refresh(ctx)
		}()
		wg.Wait()
	})
}

// LoadLanguages derives the language list from one unfiltered page. Only
// the first call issues a request, whatever its outcome. The list is a
// sample of what that page holds, not every language in the catalog.
func (s *Session) LoadLanguages(ctx context.Context) {
	s.langOnce.Do(func() {
		resp, err := s.catalog.ListBooks(ctx, url.Values{})
		if err != nil {
			log.Error().Err(err).Str("session", s.id).Msg("Error fetching language data")
			return
		}

		codes := UniqueLanguages(resp.Results)

		s.mu.Lock()
		s.languages = codes
		s.mu.Unlock()

		log.Debug().Str("session", s.id).Int("languages", len(codes)).Msg("Language list loaded")
		s.notify(ChangeLanguages)
	})
}

// Refresh fetches books for the current query and replaces the displayed
// list. On failure the list is left as it was.
func (s *Session) Refresh(ctx context.Context) error {
	q := s.Query()
	id := s.issued.Add(1)

	resp, err := s.catalog.ListBooks(ctx, q.Params())
	if err != nil {
		log.Error().Err(err).
			Str("session", s.id).
			Str("search", q.Search).
			Str("language", q.Language).
			Str("sort", string(q.Sort)).
			Msg("Error fetching filtered books")
		return err
	}

	s.mu.Lock()
	if s.discardStale && id != s.issued.Load() {
		s.mu.Unlock()
		log.Debug().Str("session", s.id).Uint64("request", id).Msg("Discarding stale book response")
		return ErrStaleResponse
	}
	s.books = resp.Results
	s.mu.Unlock()

	s.notify(ChangeBooks)
	return nil
}

// SetSearch changes the search text and refetches if it differs
func (s *Session) SetSearch(ctx context.Context, search string) error {
	return s.update(ctx, func(q *Query) { q.Search = search })
}

// SetLanguage changes the language selection and refetches if it differs
func (s *Session) SetLanguage(ctx context.Context, code string) error {
	return s.update(ctx, func(q *Query) { q.Language = code })
}

// SetSort changes the sort mode and refetches if it differs
func (s *Session) SetSort(ctx context.Context, mode SortMode) error {
	return s.update(ctx, func(q *Query) { q.Sort = mode })
}

func (s *Session) update(ctx context.Context, mutate func(q *Query)) error {
	s.Touch()

	s.mu.Lock()
	next := s.query
	mutate(&next)
	if next == s.query {
		s.mu.Unlock()
		return nil
	}
	s.query = next
	s.mu.Unlock()

	return s.Refresh(ctx)
}

func (s *Session) notify(kind ChangeKind) {
	if s.listener != nil {
		s.listener(s, kind)
	}
}
