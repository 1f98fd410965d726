package group

import "time"

// Group represents a group in the system
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Member represents a user's membership in a group. Membership is a set:
// (group_id, user_id) appears at most once. Paid is the group-level payment
// flag, independent from any per-expense paid status.
type Member struct {
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	Paid     bool      `json:"paid"`
	JoinedAt time.Time `json:"joined_at"`

	// Populated from JOIN
	Username  string  `json:"username,omitempty"`
	Handle    string  `json:"handle,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
