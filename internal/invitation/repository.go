package invitation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles invitation data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new invitation repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `
	SELECT i.id, i.group_id, i.user_id, i.email, i.status, i.created_at, COALESCE(g.name, '')
	FROM invitations i
	LEFT JOIN groups g ON i.group_id = g.id
`

// Create inserts a new pending invitation
func (r *Repository) Create(ctx context.Context, inv *Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.Status == "" {
		inv.Status = StatusPending
	}

	query := `
		INSERT INTO invitations (id, group_id, user_id, email, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		inv.ID, inv.GroupID, inv.UserID, inv.Email, inv.Status,
	).Scan(&inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

// GetByID retrieves an invitation by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Invitation, error) {
	query := selectColumns + `WHERE i.id = $1`

	inv, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

// FindPending looks up a pending invitation of the given target in the given
// group. Exactly one of userID and email should be non-nil.
func (r *Repository) FindPending(ctx context.Context, groupID string, userID, email *string) (*Invitation, error) {
	query := selectColumns + `
		WHERE i.group_id = $1
		  AND i.status = 'pending'
		  AND (($2::text IS NOT NULL AND i.user_id = $2) OR ($3::text IS NOT NULL AND i.email = $3))
	`

	inv, err := r.scanOne(r.db.QueryRowContext(ctx, query, groupID, userID, email))
	if err != nil {
		return nil, fmt.Errorf("failed to find pending invitation: %w", err)
	}
	return inv, nil
}

// ListPendingByUserID retrieves pending invitations addressed to a user id
func (r *Repository) ListPendingByUserID(ctx context.Context, userID string) ([]*Invitation, error) {
	query := selectColumns + `
		WHERE i.user_id = $1 AND i.status = 'pending'
		ORDER BY i.created_at DESC
	`
	return r.list(ctx, query, userID)
}

// ListPendingByEmail retrieves pending invitations addressed to an email
func (r *Repository) ListPendingByEmail(ctx context.Context, email string) ([]*Invitation, error) {
	query := selectColumns + `
		WHERE i.email = $1 AND i.status = 'pending'
		ORDER BY i.created_at DESC
	`
	return r.list(ctx, query, email)
}

// UpdateStatus moves an invitation to a new status
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	query := `UPDATE invitations SET status = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update invitation status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("invitation not found")
	}

	return nil
}

func (r *Repository) list(ctx context.Context, query string, arg interface{}) ([]*Invitation, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*Invitation
	for rows.Next() {
		inv := &Invitation{}
		if err := rows.Scan(
			&inv.ID,
			&inv.GroupID,
			&inv.UserID,
			&inv.Email,
			&inv.Status,
			&inv.CreatedAt,
			&inv.GroupName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

func (r *Repository) scanOne(row *sql.Row) (*Invitation, error) {
	inv := &Invitation{}
	err := row.Scan(
		&inv.ID,
		&inv.GroupID,
		&inv.UserID,
		&inv.Email,
		&inv.Status,
		&inv.CreatedAt,
		&inv.GroupName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}
