package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus/student-registration/internal/api/metrics"
	"github.com/campus/student-registration/internal/core/domain"
	"github.com/campus/student-registration/internal/core/ports"
)

// AuthService implements signup, credential verification and session login.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionAuthority
	cost     int
	log      zerolog.Logger

	// dummyHash is compared against when the username is unknown so both
	// failure paths spend the same bcrypt work.
	dummyHash []byte
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionAuthority, cost int, log zerolog.Logger) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Cannot fail: cost is in range and the input is short.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("no-such-user-placeholder"), cost)

	return &AuthService{
		users:     users,
		sessions:  sessions,
		cost:      cost,
		log:       log,
		dummyHash: dummy,
	}
}

// Signup validates the form and stores a new user with a bcrypt hash.
// Validation happens before any store call.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	password := strings.TrimSpace(in.Password)
	confirm := strings.TrimSpace(in.Confirm)

	if username == "" || password == "" {
		metrics.SignupsTotal.WithLabelValues("missing_field").Inc()
		return nil, domain.ErrMissingField
	}
	if password != confirm {
		metrics.SignupsTotal.WithLabelValues("mismatch").Inc()
		return nil, domain.ErrPasswordMismatch
	}
	if !domain.ValidatePassword(password) {
		metrics.SignupsTotal.WithLabelValues("weak_password").Inc()
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), s.cost)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
			return nil, domain.ErrDuplicateUsername
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *AuthService) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, bcryptInput(password))
			return false, nil
		}
		return false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), bcryptInput(password)) != nil {
		return false, nil
	}
	return true, nil
}

// Login returns domain.ErrInvalidCredentials for an unknown user and for a
// wrong password alike.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	ok, err := s.Verify(ctx, username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return domain.Session{}, err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return domain.Session{}, fmt.Errorf("issue session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", username).Msg("user logged in")
	return domain.Session{Username: username, Token: token}, nil
}

func (s *AuthService) Logout(ctx context.Context, session domain.Session) error {
	if session.Token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, session.Token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	metrics.SessionsRevokedTotal.Inc()
	s.log.Info().Str("username", session.Username).Msg("user logged out")
	return nil
}

// bcryptMaxInput is the longest input bcrypt accepts.
const bcryptMaxInput = 72

// bcryptInput returns the bytes fed to bcrypt. Passwords longer than bcrypt
// accepts are replaced by the base64 of their SHA-256 digest (44 bytes), so
// every password the policy allows can be stored and no two long passwords
// collide on a shared prefix.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
