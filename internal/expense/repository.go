package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new expense. PaidStatus starts empty; rows appear lazily
// as members toggle their status.
func (r *Repository) Create(ctx context.Context, e *Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	query := `
		INSERT INTO expenses (id, group_id, description, amount, category, paid_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.GroupID, e.Description, e.Amount, e.Category, e.PaidBy,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	e.PaidStatus = map[string]bool{}
	return nil
}

// GetByID retrieves one expense within a group, including its paid status map
func (r *Repository) GetByID(ctx context.Context, groupID, id string) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.description, e.amount, e.category, e.paid_by, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.paid_by = u.id
		WHERE e.group_id = $1 AND e.id = $2
	`

	e := &Expense{}
	err := r.db.QueryRowContext(ctx, query, groupID, id).Scan(
		&e.ID,
		&e.GroupID,
		&e.Description,
		&e.Amount,
		&e.Category,
		&e.PaidBy,
		&e.CreatedAt,
		&e.PayerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := r.loadPaidStatus(ctx, []*Expense{e}); err != nil {
		return nil, err
	}

	return e, nil
}

// ListByGroup retrieves all expenses of a group, newest first
func (r *Repository) ListByGroup(ctx context.Context, groupID string) ([]*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.description, e.amount, e.category, e.paid_by, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.paid_by = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID,
			&e.GroupID,
			&e.Description,
			&e.Amount,
			&e.Category,
			&e.PaidBy,
			&e.CreatedAt,
			&e.PayerUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadPaidStatus(ctx, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

// Update modifies an existing expense
func (r *Repository) Update(ctx context.Context, groupID, id string, req *UpdateExpenseRequest) (*Expense, error) {
	query := `
		UPDATE expenses
		SET description = COALESCE($3, description),
		    amount = COALESCE($4, amount),
		    category = COALESCE($5, category)
		WHERE group_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query, groupID, id, req.Description, req.Amount, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, groupID, id)
}

// Delete removes an expense and its paid status rows (cascade)
func (r *Repository) Delete(ctx context.Context, groupID, id string) error {
	query := `DELETE FROM expenses WHERE group_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, groupID, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found")
	}

	return nil
}

// SetPaidStatus upserts one member's paid flag on an expense
func (r *Repository) SetPaidStatus(ctx context.Context, expenseID, userID string, paid bool) error {
	query := `
		INSERT INTO expense_paid_status (expense_id, user_id, paid)
		VALUES ($1, $2, $3)
		ON CONFLICT (expense_id, user_id) DO UPDATE SET paid = EXCLUDED.paid
	`

	if _, err := r.db.ExecContext(ctx, query, expenseID, userID, paid); err != nil {
		return fmt.Errorf("failed to set paid status: %w", err)
	}

	return nil
}

// loadPaidStatus fills the PaidStatus maps of the given expenses
func (r *Repository) loadPaidStatus(ctx context.Context, expenses []*Expense) error {
	byID := make(map[string]*Expense, len(expenses))
	ids := make([]string, 0, len(expenses))
	for _, e := range expenses {
		e.PaidStatus = map[string]bool{}
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	query := `
		SELECT expense_id, user_id, paid
		FROM expense_paid_status
		WHERE expense_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load paid status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, userID string
		var paid bool
		if err := rows.Scan(&expenseID, &userID, &paid); err != nil {
			return fmt.Errorf("failed to scan paid status: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.PaidStatus[userID] = paid
		}
	}

	return rows.Err()
}
