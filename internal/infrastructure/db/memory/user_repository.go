// Package memory provides in-process implementations of the repository ports
// for development and tests. Data is lost when the process exits.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/campus/student-registration/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// Create inserts the user unless the username is already taken. The check
// and the insert happen under one lock.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrDuplicateUsername
	}

	stored := *user
	stored.ID = uuid.NewString()
	r.users[stored.Username] = stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}
