package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campus/student-registration/internal/core/domain"
)

// Denylist records revoked token ids.
type Denylist interface {
	Add(ctx context.Context, id string, ttl time.Duration) error
	Contains(ctx context.Context, id string) (bool, error)
}

// JWTAuthority issues HS256-signed tokens carrying the username as subject.
// Tokens are stateless until revoked; revocation stores the token id in the
// denylist for the rest of its lifetime.
type JWTAuthority struct {
	secret []byte
	ttl    time.Duration
	deny   Denylist
	now    func() time.Time
}

func NewJWTAuthority(secret string, ttl time.Duration, deny Denylist) *JWTAuthority {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTAuthority{secret: []byte(secret), ttl: ttl, deny: deny, now: time.Now}
}

func (a *JWTAuthority) Issue(_ context.Context, username string) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (a *JWTAuthority) Resolve(ctx context.Context, token string) (string, error) {
	claims, err := a.parse(token, true)
	if err != nil {
		return "", domain.ErrSessionNotFound
	}

	revoked, err := a.deny.Contains(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", domain.ErrSessionNotFound
	}
	return claims.Subject, nil
}

// Revoke denies the token id until its expiry. Tokens that do not verify
// are ignored.
func (a *JWTAuthority) Revoke(ctx context.Context, token string) error {
	claims, err := a.parse(token, false)
	if err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	return a.deny.Add(ctx, claims.ID, claims.ExpiresAt.Sub(a.now()))
}

func (a *JWTAuthority) parse(token string, validateExpiry bool) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		if !validateExpiry && errors.Is(err, jwt.ErrTokenExpired) {
			return claims, nil
		}
		return nil, err
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrSessionNotFound
	}
	return claims, nil
}
