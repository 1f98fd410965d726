package auth

import "time"

// Account is an identity record: the credentials side of a user. The profile
// (handle, username, avatar) lives in the users table under the same id, and
// the two are written in separate, non-atomic steps.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
