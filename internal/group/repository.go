package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group into the database
func (r *Repository) Create(ctx context.Context, g *Group) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}

	query := `
		INSERT INTO groups (id, name, created_by)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	if err := r.db.QueryRowContext(ctx, query, g.ID, g.Name, g.CreatedBy).Scan(&g.CreatedAt); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Group, error) {
	query := `
		SELECT id, name, created_by, created_at
		FROM groups
		WHERE id = $1
	`

	g := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return g, nil
}

// ListByMember retrieves all groups the user belongs to
func (r *Repository) ListByMember(ctx context.Context, userID string) ([]*Group, error) {
	query := `
		SELECT g.id, g.name, g.created_by, g.created_at
		FROM groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.user_id = $1
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g := &Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// Delete removes a group. Its membership rows and expenses go with it via
// ON DELETE CASCADE; invitations are retained.
func (r *Repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM groups WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("group not found")
	}

	return nil
}

// AddMember adds a user to the group's member set. Adding an existing member
// is a no-op; the bool reports whether a row was actually inserted.
func (r *Repository) AddMember(ctx context.Context, groupID, userID string) (bool, error) {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, groupID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to add member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetMembers retrieves all members of a group with their profile data
func (r *Repository) GetMembers(ctx context.Context, groupID string) ([]*Member, error) {
	query := `
		SELECT gm.group_id, gm.user_id, gm.paid, gm.joined_at, u.username, u.handle, u.avatar_url
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(
			&m.GroupID,
			&m.UserID,
			&m.Paid,
			&m.JoinedAt,
			&m.Username,
			&m.Handle,
			&m.AvatarURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// SetMemberPaid updates the group-level payment flag for a member. The bool
// reports whether the member row exists.
func (r *Repository) SetMemberPaid(ctx context.Context, groupID, userID string, paid bool) (bool, error) {
	query := `
		UPDATE group_members
		SET paid = $3
		WHERE group_id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, groupID, userID, paid)
	if err != nil {
		return false, fmt.Errorf("failed to update member payment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
