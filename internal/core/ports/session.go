package ports

import "context"

// SessionAuthority issues opaque per-browser tokens bound to a username.
type SessionAuthority interface {
	Issue(ctx context.Context, username string) (string, error)
	// Resolve returns domain.ErrSessionNotFound for absent, expired, revoked
	// or malformed tokens.
	Resolve(ctx context.Context, token string) (string, error)
	// Revoke invalidates the token. Revoking an unknown token is not an error.
	Revoke(ctx context.Context, token string) error
}
