package notification

import "time"

// Notification represents a notification in the system
type Notification struct {
	ID                string    `json:"id"`
	RecipientID       string    `json:"recipient_id"`
	Message           string    `json:"message"`
	IsRead            bool      `json:"is_read"`
	RelatedEntityType *string   `json:"related_entity_type,omitempty"` // e.g., "GROUP_INVITE", "EXPENSE"
	RelatedEntityID   *string   `json:"related_entity_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

const (
	entityTypeGroupInvite = "GROUP_INVITE"
	entityTypeExpense     = "EXPENSE"
)
