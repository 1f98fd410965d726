package invitation

import "time"

// Status is the lifecycle state of an invitation. Transitions are
// pending → accepted and pending → declined; the terminal states never
// transition into each other.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Invitation represents an invitation of one target into one group. Exactly
// one of UserID and Email is set: UserID when the target was resolved to a
// registered user at send time, Email when the target was addressed by email
// without provisioning an account.
//
// Invitations are retained after the group is deleted; accepting one then
// fails with a group lookup error while the record itself survives.
type Invitation struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	UserID    *string   `json:"user_id,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	// Populated via JOIN; empty when the group no longer exists.
	GroupName string `json:"group_name,omitempty"`
}
