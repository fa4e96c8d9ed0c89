package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campus/student-registration/internal/api/middleware"
	"github.com/campus/student-registration/internal/api/view"
	"github.com/campus/student-registration/internal/core/domain"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := view.New()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func jsonRequest(target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPost, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// withSession runs the request through middleware.Session backed by a single
// known token, so handlers see an authenticated context.
func withSession(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, username string, h echo.HandlerFunc) error {
	req.AddCookie(&http.Cookie{Name: "sid", Value: "tok"})
	c := e.NewContext(req, rec)
	auth := &fixedAuthority{token: "tok", username: username}
	return middleware.Session(auth, "sid")(h)(c)
}

type fixedAuthority struct {
	token, username string
}

func (a *fixedAuthority) Issue(_ context.Context, _ string) (string, error) { return a.token, nil }

func (a *fixedAuthority) Resolve(_ context.Context, token string) (string, error) {
	if token != a.token {
		return "", domain.ErrSessionNotFound
	}
	return a.username, nil
}

func (a *fixedAuthority) Revoke(context.Context, string) error { return nil }
