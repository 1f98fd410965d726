package user

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles profile persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new profile. The id is set by the caller so that the
// profile shares the account id it belongs to.
func (r *Repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, handle, email, username, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, u.ID, u.Handle, u.Email, u.Username, u.AvatarURL).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by its id
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, handle, email, username, avatar_url, created_at
		FROM users
		WHERE id = $1
	`

	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByHandle retrieves a profile by its unique handle
func (r *Repository) GetByHandle(ctx context.Context, handle string) (*User, error) {
	query := `
		SELECT id, handle, email, username, avatar_url, created_at
		FROM users
		WHERE handle = $1
	`

	return scanOne(r.db.QueryRowContext(ctx, query, handle))
}

// GetByEmail retrieves a profile by the denormalized account email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, handle, email, username, avatar_url, created_at
		FROM users
		WHERE email = $1
	`

	return scanOne(r.db.QueryRowContext(ctx, query, email))
}

// Update modifies username and/or avatar of an existing profile
func (r *Repository) Update(ctx context.Context, id string, req *UpdateProfileRequest) (*User, error) {
	query := `
		UPDATE users
		SET username = COALESCE($2, username),
		    avatar_url = COALESCE($3, avatar_url)
		WHERE id = $1
		RETURNING id, handle, email, username, avatar_url, created_at
	`

	return scanOne(r.db.QueryRowContext(ctx, query, id, req.Username, req.AvatarURL))
}

func scanOne(row *sql.Row) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID,
		&u.Handle,
		&u.Email,
		&u.Username,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return u, nil
}
