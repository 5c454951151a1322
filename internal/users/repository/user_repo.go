package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/screenforge/screenforge-backend/internal/users/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id, name, email, credits, created_at
FROM users
WHERE email = $1
`
	var u domain.User
	err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Name, &u.Email, &u.Credits, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user with the default credit balance.
// A concurrent insert for the same email returns the existing row unchanged.
func (r *UserRepository) Create(ctx context.Context, name, email string) (*domain.User, error) {
	const q = `
INSERT INTO users (name, email, credits)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id, name, email, credits, created_at
`
	var u domain.User
	err := r.db.QueryRowContext(ctx, q, name, email, domain.DefaultCredits).
		Scan(&u.ID, &u.Name, &u.Email, &u.Credits, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DecrementCredits takes one credit and returns the new balance.
func (r *UserRepository) DecrementCredits(ctx context.Context, email string) (int, error) {
	const q = `
UPDATE users
SET credits = credits - 1
WHERE email = $1 AND credits > 0
RETURNING credits
`
	var credits int
	err := r.db.QueryRowContext(ctx, q, email).Scan(&credits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrInsufficientCredits
	}
	if err != nil {
		return 0, err
	}
	return credits, nil
}
