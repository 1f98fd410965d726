package user

import "time"

// User is a profile record. It is keyed by the owning account's id; the
// email is a denormalized copy of the account email.
type User struct {
	ID        string    `json:"id"`
	Handle    string    `json:"handle"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
