package database

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order on startup. Statements are idempotent so
// re-running them against an existing database is safe.
//
// invitations.group_id carries no foreign key on purpose: invitation records
// outlive their group, and accepting one after the group is gone fails at
// the group lookup instead of the database.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		handle TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		username TEXT NOT NULL,
		avatar_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_by TEXT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id),
		paid BOOLEAN NOT NULL DEFAULT false,
		joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		description TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		category TEXT,
		paid_by TEXT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS expense_paid_status (
		expense_id TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id),
		paid BOOLEAN NOT NULL DEFAULT false,
		PRIMARY KEY (expense_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS invitations (
		id TEXT PRIMARY KEY,
		group_id TEXT NOT NULL,
		user_id TEXT,
		email TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_user_pending ON invitations (user_id) WHERE status = 'pending'`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_email_pending ON invitations (email) WHERE status = 'pending'`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		recipient_id TEXT NOT NULL REFERENCES users(id),
		message TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT false,
		related_entity_type TEXT,
		related_entity_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the schema migrations in order
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
