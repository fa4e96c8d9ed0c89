package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campus/student-registration/internal/api/middleware"
	"github.com/campus/student-registration/internal/core/domain"
)

// ctxSession returns the session injected by middleware.Session. Routes
// behind RequireSession always have one; anything else gets a 401.
func ctxSession(c echo.Context) (domain.Session, error) {
	s := middleware.SessionFrom(c)
	if !s.Authenticated() {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return s, nil
}
