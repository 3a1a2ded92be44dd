package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/api/metrics"
	"github.com/inventrack/dashboard-gateway/internal/api/middleware"
	"github.com/inventrack/dashboard-gateway/internal/core/ports"
	"github.com/inventrack/dashboard-gateway/internal/core/service"
	"github.com/inventrack/dashboard-gateway/internal/infrastructure/upstream"
	"github.com/inventrack/dashboard-gateway/internal/pkg/notify"
)

const sessionMaxAge = 7 * 24 * 60 * 60 // seconds, matches the session TTL default

// AuthHandler serves the login screen and owns the session cookie.
type AuthHandler struct {
	inventory ports.Inventory
	sessions  *service.SessionService
	notifier  *notify.Notifier
	log       zerolog.Logger
}

func NewAuthHandler(inventory ports.Inventory, sessions *service.SessionService, notifier *notify.Notifier, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{inventory: inventory, sessions: sessions, notifier: notifier, log: log}
}

type loginForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type loginPage struct {
	basePage
	Email string
}

// LoginPage renders the sign-in screen. The guard has already bounced
// authenticated visitors to the dashboard.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginPage{
		basePage: newBasePage(c, "Login", h.notifier),
	})
}

// Login submits credentials to the inventory API. On a success envelope the
// user, token and permission level are stored together and the browser is
// redirected to the dashboard; a rejection or transport failure re-renders
// the form with the API's message.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.renderLoginError(c, form.Email, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderLoginError(c, form.Email, err.Error())
	}

	res, err := h.inventory.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		msg := "Something went wrong. Please try again."
		reason := "error"
		var ue *upstream.Error
		if errors.As(err, &ue) && ue.Message != "" {
			msg = ue.Message
		}
		if errors.Is(err, upstream.ErrRejected) {
			reason = "rejected"
		}
		metrics.LoginFailuresTotal.WithLabelValues(reason).Inc()
		h.log.Warn().Err(err).Str("email", form.Email).Msg("login failed")
		return h.renderLoginError(c, form.Email, msg)
	}

	id, _, err := h.sessions.Begin(c.Request().Context(), res.User, res.Token)
	if err != nil {
		h.log.Error().Err(err).Msg("session persist failed")
		return h.renderLoginError(c, form.Email, "Could not start a session. Please try again.")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.Scheme() == "https",
	})

	metrics.SessionsStartedTotal.Inc()
	h.notifier.Push(id, notify.Success, "Login successful")
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout ends the session, removes the persisted record, and expires the
// cookie. Always lands on the login page, even if the store misbehaves.
func (h *AuthHandler) Logout(c echo.Context) error {
	id := middleware.SessionID(c)
	h.sessions.End(c.Request().Context(), id)

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	metrics.SessionsEndedTotal.Inc()
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) renderLoginError(c echo.Context, email, msg string) error {
	page := loginPage{
		basePage: newBasePage(c, "Login", h.notifier),
		Email:    email,
	}
	page.Err = msg
	return c.Render(http.StatusOK, "login.html", page)
}
