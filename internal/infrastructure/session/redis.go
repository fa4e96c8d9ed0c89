package session

import (
	"context"
	"time"

	"github.com/campus/student-registration/internal/core/domain"
)

// SessionStore is the server-side persistence the RedisAuthority needs.
type SessionStore interface {
	Save(ctx context.Context, tokenHash, username string, ttl time.Duration) error
	Lookup(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, tokenHash string) error
}

// RedisAuthority issues opaque tokens whose hashes are stored server side.
type RedisAuthority struct {
	store SessionStore
	ttl   time.Duration
}

func NewRedisAuthority(store SessionStore, ttl time.Duration) *RedisAuthority {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisAuthority{store: store, ttl: ttl}
}

func (a *RedisAuthority) Issue(ctx context.Context, username string) (string, error) {
	token, hash, err := GenerateToken()
	if err != nil {
		return "", err
	}
	if err := a.store.Save(ctx, hash, username, a.ttl); err != nil {
		return "", err
	}
	return token, nil
}

func (a *RedisAuthority) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrSessionNotFound
	}
	return a.store.Lookup(ctx, HashToken(token))
}

func (a *RedisAuthority) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.store.Delete(ctx, HashToken(token))
}
