package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campus/student-registration/internal/api/view"
	"github.com/campus/student-registration/internal/core/domain"
	"github.com/campus/student-registration/internal/core/ports"
)

// Messages shown on the signup and login forms.
const (
	msgCredentialsRequired = "Username and password are required."
	msgPasswordMismatch    = "Passwords do not match."
	msgUsernameTaken       = "Username already exists."
	msgInvalidCredentials  = "Invalid username or password."
)

// CookieConfig describes the session cookie set on login.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

func (h *AuthHandler) SignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.SignupPage, view.PageData{})
}

// Signup creates the account and redirects to the login page. Rejected
// submissions re-render the form with the reason.
func (h *AuthHandler) Signup(c echo.Context) error {
	var form signupForm
	if err := c.Bind(&form); err != nil {
		return h.signupError(c, msgCredentialsRequired)
	}
	form.trim()

	err := c.Validate(&form)
	if err == nil {
		_, err = h.authService.Signup(c.Request().Context(), ports.SignupInput{
			Username: form.Username,
			Password: form.Password,
			Confirm:  form.Confirm,
		})
	}
	switch {
	case err == nil:
		return c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, domain.ErrMissingField):
		return h.signupError(c, msgCredentialsRequired)
	case errors.Is(err, domain.ErrPasswordMismatch):
		return h.signupError(c, msgPasswordMismatch)
	case errors.Is(err, domain.ErrWeakPassword):
		return h.signupError(c, domain.PasswordPolicyMessage)
	case errors.Is(err, domain.ErrDuplicateUsername):
		return h.signupError(c, msgUsernameTaken)
	default:
		return err
	}
}

func (h *AuthHandler) signupError(c echo.Context, msg string) error {
	return c.Render(http.StatusOK, view.SignupPage, view.PageData{Error: msg})
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.LoginPage, view.PageData{})
}

// Login sets the session cookie and redirects home.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.loginError(c)
	}
	form.trim()
	if err := c.Validate(&form); err != nil {
		return h.loginError(c)
	}

	session, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return h.loginError(c)
		}
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) loginError(c echo.Context) error {
	return c.Render(http.StatusOK, view.LoginPage, view.PageData{Error: msgInvalidCredentials})
}

// Logout revokes the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), session); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/login")
}
