package auth

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles account persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new account repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new account
func (r *Repository) Create(ctx context.Context, a *Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, a.ID, a.Email, a.PasswordHash).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = $1
	`

	a := &Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return a, nil
}

// GetByID retrieves an account by id
func (r *Repository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE id = $1
	`

	a := &Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return a, nil
}
