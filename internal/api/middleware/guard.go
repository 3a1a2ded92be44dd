package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
	"github.com/inventrack/dashboard-gateway/internal/infrastructure/upstream"
)

// SessionCookie names the cookie carrying the session ID.
const SessionCookie = "dashboard_session"

// Echo context keys set by the guard.
const (
	ctxSession   = "session"
	ctxSessionID = "session_id"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// SessionResolver loads the session snapshot for a request's cookie.
// Implemented by service.SessionService.
type SessionResolver interface {
	Snapshot(ctx context.Context, id string) *domain.Session
}

// Guard enforces the boundary between the public login page and the
// protected dashboard on every request:
//
//  1. /login with a session token redirects to /dashboard.
//  2. /dashboard/* without a session token redirects to /login.
//  3. Everything else passes through.
//
// Token validity means presence of the persisted artifact only; expiry and
// signature checks are the inventory API's job, and its rejections surface
// on the page that made the call. The resolved snapshot is stashed on the
// context, and the bearer token is planted on the request context for the
// upstream client.
func Guard(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie.Value
			}

			var sess *domain.Session
			if id != "" {
				sess = sessions.Snapshot(c.Request().Context(), id)
			}
			hasToken := sess != nil && sess.Token != ""

			path := c.Request().URL.Path
			if path == loginPath && hasToken {
				return c.Redirect(http.StatusFound, dashboardPath)
			}
			if protectedPath(path) && !hasToken {
				return c.Redirect(http.StatusFound, loginPath)
			}

			c.Set(ctxSessionID, id)
			if sess != nil {
				c.Set(ctxSession, sess)
				ctx := upstream.WithToken(c.Request().Context(), sess.Token)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	}
}

// protectedPath reports whether path is the dashboard or one of its
// subpages. A mere shared prefix ("/dashboardanything") is not protected.
func protectedPath(path string) bool {
	return path == dashboardPath || strings.HasPrefix(path, dashboardPath+"/")
}

// Session returns the snapshot stashed by the guard, or nil when signed out.
func Session(c echo.Context) *domain.Session {
	sess, _ := c.Get(ctxSession).(*domain.Session)
	return sess
}

// SessionID returns the request's session ID, or "" without a cookie.
func SessionID(c echo.Context) string {
	id, _ := c.Get(ctxSessionID).(string)
	return id
}
