package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

type fakeUsers struct {
	users map[string]*store.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*store.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, store.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUsers) Upsert(_ context.Context, user *store.User) error {
	if f.users == nil {
		f.users = make(map[string]*store.User)
	}
	f.users[user.Email] = user
	return nil
}

type fakeSessions struct {
	sessions map[string]string
}

func (f *fakeSessions) SetSession(_ context.Context, token, email string, _ time.Duration) error {
	if f.sessions == nil {
		f.sessions = make(map[string]string)
	}
	f.sessions[token] = email
	return nil
}

func (f *fakeSessions) GetSession(_ context.Context, token string) (string, error) {
	email, ok := f.sessions[token]
	if !ok {
		return "", errors.New("nil")
	}
	return email, nil
}

func (f *fakeSessions) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func newTestAuth(t *testing.T) (*Service, *fakeUsers, *fakeSessions) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}
	users := &fakeUsers{users: map[string]*store.User{
		"editor@example.com": {Email: "editor@example.com", PasswordHash: string(hash)},
	}}
	sessions := &fakeSessions{}
	svc := &Service{
		users:    users,
		sessions: sessions,
		admins:   map[string]bool{"editor@example.com": true},
	}
	return svc, users, sessions
}

func TestSignInAndVerify(t *testing.T) {
	svc, _, sessions := newTestAuth(t)
	ctx := context.Background()

	token, err := svc.SignIn(ctx, "editor@example.com", "hunter2")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if token == "" {
		t.Fatal("empty session token")
	}

	email, err := svc.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if email != "editor@example.com" {
		t.Errorf("verified email = %q", email)
	}

	if err := svc.SignOut(ctx, token); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := svc.Verify(ctx, token); !errors.Is(err, ErrNoSession) {
		t.Errorf("Verify after sign-out = %v, want ErrNoSession", err)
	}
	if len(sessions.sessions) != 0 {
		t.Errorf("sessions left behind: %v", sessions.sessions)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "editor@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "hunter2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignIn(ctx, tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	if _, err := svc.Verify(context.Background(), ""); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestIsAdminExactMatchOnly(t *testing.T) {
	svc, _, _ := newTestAuth(t)

	tests := []struct {
		email string
		want  bool
	}{
		{"editor@example.com", true},
		{"Editor@example.com", false},
		{"editor@example.com ", false},
		{"other@example.com", false},
	}
	for _, tt := range tests {
		if got := svc.IsAdmin(tt.email); got != tt.want {
			t.Errorf("IsAdmin(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestSetPasswordRoundTrip(t *testing.T) {
	svc, users, _ := newTestAuth(t)
	ctx := context.Background()

	if err := svc.SetPassword(ctx, "new@example.com", "s3cret"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	stored := users.users["new@example.com"]
	if stored == nil {
		t.Fatal("account not stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}
