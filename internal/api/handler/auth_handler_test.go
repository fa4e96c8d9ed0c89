package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campus/student-registration/internal/core/domain"
	"github.com/campus/student-registration/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn  func(ctx context.Context, username, password string) (domain.Session, error)
	logoutFn func(ctx context.Context, session domain.Session) error
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Verify(context.Context, string, string) (bool, error) {
	return false, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, session domain.Session) error {
	return s.logoutFn(ctx, session)
}

var testCookie = CookieConfig{Name: "sid", TTL: time.Hour}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		signupFn: func(_ context.Context, in ports.SignupInput) (*domain.User, error) {
			if in.Username != "alice" || in.Password != "Passw0rd@" || in.Confirm != "Passw0rd@" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{Username: in.Username}, nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	req := formRequest("/signup", url.Values{"username": {" alice "}, "password": {"Passw0rd@"}, "confirm": {"Passw0rd@ "}})
	rec := httptest.NewRecorder()

	if err := handler.Signup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestAuthHandler_Signup_RendersErrors(t *testing.T) {
	cases := []struct {
		name   string
		form   url.Values
		err    error
		called bool
		want   string
	}{
		{"blank username", url.Values{"username": {"  "}, "password": {"x"}}, nil, false, msgCredentialsRequired},
		{"mismatch", url.Values{"username": {"bob"}, "password": {"a"}, "confirm": {"b"}}, domain.ErrPasswordMismatch, true, msgPasswordMismatch},
		{"weak", url.Values{"username": {"bob"}, "password": {"a"}, "confirm": {"a"}}, domain.ErrWeakPassword, true, "at least 8 characters"},
		{"duplicate", url.Values{"username": {"bob"}, "password": {"a"}, "confirm": {"a"}}, domain.ErrDuplicateUsername, true, msgUsernameTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho(t)
			called := false
			stub := &stubAuthService{
				signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
					called = true
					return nil, tc.err
				},
			}
			handler := NewAuthHandler(stub, testCookie)

			rec := httptest.NewRecorder()
			if err := handler.Signup(e.NewContext(formRequest("/signup", tc.form), rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if called != tc.called {
				t.Fatalf("service called = %v, want %v", called, tc.called)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("expected %q in body", tc.want)
			}
		})
	}
}

func TestAuthHandler_Signup_StoreFailureIsReturned(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
			return nil, domain.StoreError("insert user", errors.New("timeout"))
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	req := formRequest("/signup", url.Values{"username": {"bob"}, "password": {"Passw0rd@"}, "confirm": {"Passw0rd@"}})
	err := handler.Signup(e.NewContext(req, httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (domain.Session, error) {
			if username != "alice" || password != "Passw0rd@" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return domain.Session{Username: "alice", Token: "token123"}, nil
		},
	}
	handler := NewAuthHandler(stub, CookieConfig{Name: "sid", TTL: time.Hour, Secure: true})

	rec := httptest.NewRecorder()
	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {" Passw0rd@ "}})
	if err := handler.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != "sid" || ck.Value != "token123" || !ck.HttpOnly || !ck.Secure || ck.MaxAge != 3600 {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	cases := map[string]url.Values{
		"rejected": {"username": {"alice"}, "password": {"bad"}},
		"blank":    {"username": {""}, "password": {""}},
	}
	for name, form := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho(t)
			stub := &stubAuthService{
				loginFn: func(context.Context, string, string) (domain.Session, error) {
					return domain.Session{}, domain.ErrInvalidCredentials
				},
			}
			handler := NewAuthHandler(stub, testCookie)

			rec := httptest.NewRecorder()
			if err := handler.Login(e.NewContext(formRequest("/login", form), rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), msgInvalidCredentials) {
				t.Fatalf("expected login form with error, got %d", rec.Code)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Fatalf("no cookie should be set")
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho(t)
	var revoked domain.Session
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, s domain.Session) error {
			revoked = s
			return nil
		},
	}
	handler := NewAuthHandler(stub, testCookie)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	if err := withSession(e, req, rec, "alice", handler.Logout); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if revoked.Username != "alice" || revoked.Token != "tok" {
		t.Fatalf("unexpected revoked session: %+v", revoked)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Forms(t *testing.T) {
	e := newTestEcho(t)
	handler := NewAuthHandler(&stubAuthService{}, testCookie)

	for path, h := range map[string]echo.HandlerFunc{"/signup": handler.SignupForm, "/login": handler.LoginForm} {
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec)); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `action="`+path+`"`) {
			t.Fatalf("%s: expected rendered form, got %d", path, rec.Code)
		}
	}
}
