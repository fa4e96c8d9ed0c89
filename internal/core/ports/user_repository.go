package ports

import (
	"context"

	"github.com/campus/student-registration/internal/core/domain"
)

// UserRepository persists credentials, one record per username.
type UserRepository interface {
	// Create stores the user. It returns domain.ErrDuplicateUsername when the
	// username is taken; the existing record is left untouched.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername returns domain.ErrUserNotFound when no record exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
