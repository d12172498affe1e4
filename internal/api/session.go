package api

import (
	"context"
	"net/http"

	"github.com/bookexplorer/bookexplorer/internal/catalog"
	"github.com/bookexplorer/bookexplorer/internal/realtime"
	"github.com/bookexplorer/bookexplorer/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	sessionCookie = "bookexplorer_session"
	sessionKey    = "session"
)

// sessionMiddleware resolves the caller's session from its cookie, creating
// and starting one when needed
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var id string
		if cookie, err := c.Cookie(sessionCookie); err == nil {
			id = cookie.Value
		}

		session, created := s.registry.GetOrCreate(id)
		if created {
			c.SetCookie(&http.Cookie{
				Name:     sessionCookie,
				Value:    session.ID(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			log.Debug().Str("session", session.ID()).Msg("Session created")
		}

		// The startup fetches outlive a cancelled request so a dropped
		// connection cannot leave the session without languages.
		session.Start(context.WithoutCancel(c.Request().Context()))

		c.Set(sessionKey, session)
		return next(c)
	}
}

func sessionFrom(c echo.Context) *catalog.Session {
	session, _ := c.Get(sessionKey).(*catalog.Session)
	return session
}

// handleMessage applies a control change sent over the websocket. Each
// change runs on its own goroutine, so fetches may overlap.
func (s *Server) handleMessage(sessionID string, msg realtime.Message) {
	session, ok := s.registry.Get(sessionID)
	if !ok {
		log.Debug().Str("session", sessionID).Msg("Message for unknown session")
		return
	}

	ctx := context.Background()

	switch msg.Type {
	case "search":
		go session.SetSearch(ctx, msg.Data)

	case "language":
		if msg.Data == "" {
			return
		}
		go session.SetLanguage(ctx, msg.Data)

	case "sort":
		mode, err := catalog.ParseSortMode(msg.Data)
		if err != nil {
			log.Debug().Err(err).Str("session", sessionID).Msg("Ignoring sort change")
			return
		}
		go session.SetSort(ctx, mode)

	default:
		log.Debug().Str("session", sessionID).Str("type", msg.Type).Msg("Unknown message type")
	}
}

// onSessionChange pushes a session's new state to its websocket clients
func (s *Server) onSessionChange(session *catalog.Session, kind catalog.ChangeKind) {
	switch kind {
	case catalog.ChangeBooks:
		list := view.NewBookList(session.Books())
		html, err := s.templates.RenderCards(list)
		if err != nil {
			log.Error().Err(err).Str("session", session.ID()).Msg("Failed to render cards")
			return
		}
		s.hub.BroadcastToSession(session.ID(), realtime.Event{
			Type: realtime.EventBooksUpdated,
			Data: BooksPayload{BookList: list, Query: session.Query(), HTML: html},
		})

	case catalog.ChangeLanguages:
		s.hub.BroadcastToSession(session.ID(), realtime.Event{
			Type: realtime.EventLanguagesUpdated,
			Data: LanguagesPayload{
				Languages: session.Languages(),
				Options:   view.LanguageOptions(session.Languages(), session.Names(), session.Query().Language),
			},
		})
	}
}

// websocket binds a realtime connection to the caller's session
func (s *Server) websocket(c echo.Context) error {
	return s.hub.Serve(c, sessionFrom(c).ID())
}
