// Package auth implements email/password sign-in for site admins. Session
// tokens live in Redis with a TTL; admin rights come from a static allow
// list of exact email addresses checked on the server.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/CoalValleyTech/span-sportshub/internal/store"
	"github.com/CoalValleyTech/span-sportshub/internal/store/repository"
)

const sessionTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials covers both unknown emails and bad passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoSession means the token is missing, expired, or revoked.
	ErrNoSession = errors.New("no active session")
)

// UserStore is the account lookup the service needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*store.User, error)
	Upsert(ctx context.Context, user *store.User) error
}

// SessionStore maps session tokens to emails with expiry.
type SessionStore interface {
	SetSession(ctx context.Context, token, email string, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

// Service verifies credentials and manages sessions.
type Service struct {
	users    UserStore
	sessions SessionStore
	admins   map[string]bool
}

// NewService creates an auth service over the users table. adminEmails is
// the exact-match allow list; variants in case or spacing are not admins.
func NewService(db *store.Database, sessions SessionStore, adminEmails []string) *Service {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		admins[email] = true
	}
	return &Service{
		users:    repository.NewUserRepository(db),
		sessions: sessions,
		admins:   admins,
	}
}

// SignIn checks the password and opens a session. The error for unknown
// emails and wrong passwords is identical on purpose.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("looking up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessions.SetSession(ctx, token, user.Email, sessionTTL); err != nil {
		return "", fmt.Errorf("opening session: %w", err)
	}
	return token, nil
}

// SignOut revokes a session token.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// Verify resolves a token to the signed-in email.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}
	email, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return "", ErrNoSession
	}
	return email, nil
}

// IsAdmin reports whether an email is on the allow list.
func (s *Service) IsAdmin(email string) bool {
	return s.admins[email]
}

// SetPassword creates or resets an account with a bcrypt hash. Used by the
// seed tool, not exposed over HTTP.
func (s *Service) SetPassword(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.users.Upsert(ctx, &store.User{Email: email, PasswordHash: string(hash)})
}
