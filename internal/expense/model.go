package expense

import "time"

// Expense represents a shared expense inside a group.
//
// PaidStatus maps user id → whether that member has settled their share of
// this expense. Entries are created lazily when a member first toggles
// their status; a missing entry means unpaid. It is independent from the
// group-level member payment flag.
type Expense struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Category    *string         `json:"category,omitempty"`
	PaidBy      string          `json:"paid_by"`
	CreatedAt   time.Time       `json:"created_at"`
	PaidStatus  map[string]bool `json:"paid_status"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}
