package session

import (
	"context"
	"sync"
	"time"

	"github.com/campus/student-registration/internal/core/domain"
)

// DefaultTTL applies when an authority is built with a non-positive TTL.
const DefaultTTL = 24 * time.Hour

type memoryEntry struct {
	username  string
	expiresAt time.Time
}

// MemoryAuthority keeps sessions in process. Expired entries are dropped
// lazily on lookup.
type MemoryAuthority struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memoryEntry
}

func NewMemoryAuthority(ttl time.Duration) *MemoryAuthority {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryAuthority{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (a *MemoryAuthority) Issue(_ context.Context, username string) (string, error) {
	token, hash, err := GenerateToken()
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	a.sessions[hash] = memoryEntry{username: username, expiresAt: a.now().Add(a.ttl)}
	a.mu.Unlock()

	return token, nil
}

func (a *MemoryAuthority) Resolve(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrSessionNotFound
	}
	hash := HashToken(token)

	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.sessions[hash]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	if a.now().After(entry.expiresAt) {
		delete(a.sessions, hash)
		return "", domain.ErrSessionNotFound
	}
	return entry.username, nil
}

func (a *MemoryAuthority) Revoke(_ context.Context, token string) error {
	a.mu.Lock()
	delete(a.sessions, HashToken(token))
	a.mu.Unlock()
	return nil
}
