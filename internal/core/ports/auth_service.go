package ports

import (
	"context"

	"github.com/campus/student-registration/internal/core/domain"
)

// SignupInput is the raw signup form.
type SignupInput struct {
	Username string
	Password string
	Confirm  string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// Verify reports whether the credentials match a stored user. Unknown
	// users and wrong passwords both yield false with a nil error.
	Verify(ctx context.Context, username, password string) (bool, error)
	// Login verifies the credentials and issues a session token.
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Logout(ctx context.Context, session domain.Session) error
}
