package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campus/student-registration/internal/api/view"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home renders the registration page for the signed-in user.
func (h *PageHandler) Home(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.HomePage, view.PageData{Username: session.Username})
}
