package repository

import (
	"context"
	"fmt"

	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

// UserRepository handles admin accounts.
type UserRepository struct {
	db *store.Database
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *store.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates an account or replaces its password hash.
func (r *UserRepository) Upsert(ctx context.Context, user *store.User) error {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`
	if _, err := r.db.DB().ExecContext(ctx, query, user.Email, user.PasswordHash); err != nil {
		return fmt.Errorf("upserting user %s: %w", user.Email, store.Classify(err))
	}
	return nil
}

// GetByEmail finds an account by exact email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*store.User, error) {
	user := &store.User{}
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT email, password_hash, created_at FROM users WHERE email = $1`, email,
	).Scan(&user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying user %s: %w", email, store.Classify(err))
	}
	return user, nil
}
