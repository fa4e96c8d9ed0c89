package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campus/student-registration/internal/core/domain"
	"github.com/campus/student-registration/internal/core/ports"
)

const sessionKey = "session"

// Session resolves the session cookie into a domain.Session stored on the
// context. Requests without a cookie, or with one the authority does not
// recognise, continue as anonymous. Authority failures are returned so the
// error handler reports them.
func Session(authority ports.SessionAuthority, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			username, err := authority.Resolve(c.Request().Context(), cookie.Value)
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				return next(c)
			case err != nil:
				return err
			}

			c.Set(sessionKey, domain.Session{Username: username, Token: cookie.Value})
			return next(c)
		}
	}
}

// RequireSession redirects anonymous requests to redirectTo with a 302.
func RequireSession(redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !SessionFrom(c).Authenticated() {
				return c.Redirect(http.StatusFound, redirectTo)
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session set by Session, or a zero Session.
func SessionFrom(c echo.Context) domain.Session {
	s, _ := c.Get(sessionKey).(domain.Session)
	return s
}
