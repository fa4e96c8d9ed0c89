package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campus/student-registration/internal/core/domain"
)

// SessionStore keeps server-side sessions keyed by token hash.
// Key format: session:<token_hash>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save binds tokenHash to username until ttl elapses.
func (s *SessionStore) Save(ctx context.Context, tokenHash, username string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenHash), username, ttl).Err(); err != nil {
		return domain.StoreError("save session", err)
	}
	return nil
}

// Lookup returns the username bound to tokenHash, or domain.ErrSessionNotFound.
func (s *SessionStore) Lookup(ctx context.Context, tokenHash string) (string, error) {
	username, err := s.client.Get(ctx, s.key(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSessionNotFound
		}
		return "", domain.StoreError("lookup session", err)
	}
	return username, nil
}

// Delete removes the session. Deleting a missing key is not an error.
func (s *SessionStore) Delete(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, s.key(tokenHash)).Err(); err != nil {
		return domain.StoreError("delete session", err)
	}
	return nil
}

func (s *SessionStore) key(tokenHash string) string {
	return fmt.Sprintf("session:%s", tokenHash)
}
