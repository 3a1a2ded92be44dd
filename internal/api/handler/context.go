package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/api/middleware"
	"github.com/inventrack/dashboard-gateway/internal/api/navigation"
	"github.com/inventrack/dashboard-gateway/internal/core/domain"
	"github.com/inventrack/dashboard-gateway/internal/core/service"
	"github.com/inventrack/dashboard-gateway/internal/infrastructure/upstream"
	"github.com/inventrack/dashboard-gateway/internal/pkg/notify"
)

// requireSession extracts the session stashed by the route guard and
// performs a fast-fail check before any upstream call: the guard redirects
// anonymous requests, so reaching a handler without an authenticated
// session means the middleware chain is miswired.
func requireSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.Session(c)
	if !sess.Authenticated() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

// basePage carries everything the shared chrome (sidebar, toasts, error
// line) needs. Page structs embed it.
type basePage struct {
	Title         string
	Nav           []navigation.Entry
	User          *domain.User
	SessionExpiry string
	Toasts        []notify.Message
	Err           string
}

// newBasePage assembles the chrome for the current request: visible nav for
// the session's permission level, pending toasts drained for display, and
// the token expiry peeked for the account strip.
func newBasePage(c echo.Context, title string, notifier *notify.Notifier) basePage {
	sess := middleware.Session(c)
	page := basePage{
		Title:  title,
		Nav:    navigation.VisibleFor(sess),
		Toasts: notifier.Drain(middleware.SessionID(c)),
	}
	if sess != nil {
		page.User = sess.User
		if td, ok := service.PeekToken(sess.Token); ok && !td.ExpiresAt.IsZero() {
			page.SessionExpiry = td.ExpiresAt.Local().Format("02 Jan 15:04")
		}
	}
	return page
}

// pushUpstreamError queues an error toast for a failed mutation, preferring
// the API's own message over the generic fallback.
func pushUpstreamError(notifier *notify.Notifier, log zerolog.Logger, sid string, err error, fallback string) {
	log.Error().Err(err).Msg("mutation failed")
	msg := fallback
	var ue *upstream.Error
	if errors.As(err, &ue) && ue.Message != "" {
		msg = ue.Message
	}
	notifier.Push(sid, notify.Error, msg)
}
