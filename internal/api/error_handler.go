package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
	"github.com/inventrack/dashboard-gateway/internal/infrastructure/upstream"
)

// errorPage is the data handed to the error template.
type errorPage struct {
	Title string
	Err   string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the error screen (per-page errors never reach this handler;
//     pages keep their own error line, see the resource handlers).
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		// Losing the session mid-request means signed out: back to login.
		if code == http.StatusUnauthorized {
			_ = c.Redirect(http.StatusFound, "/login")
			return
		}

		page := errorPage{Title: http.StatusText(code), Err: msg}
		if rerr := c.Render(code, "error.html", page); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ue *upstream.Error
	if errors.As(err, &ue) {
		msg := "The inventory API could not be reached."
		if ue.Message != "" {
			msg = ue.Message
		}
		return http.StatusBadGateway, msg
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "not authenticated"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
