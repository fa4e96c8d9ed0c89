// Package view renders the server-side HTML pages from embedded templates.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

const (
	SignupPage = "signup.html"
	LoginPage  = "login.html"
	HomePage   = "index.html"
)

// PageData is the model every page accepts.
type PageData struct {
	Error    string
	Username string
}

// Renderer implements echo.Renderer.
type Renderer struct {
	templates *template.Template
}

func New() (*Renderer, error) {
	t, err := template.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
