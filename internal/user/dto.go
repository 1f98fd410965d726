package user

// UpdateProfileRequest represents the request body for updating a profile
type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID        string  `json:"id"`
	Handle    string  `json:"handle"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// AvatarResponse is returned after an avatar upload
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Handle:    u.Handle,
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
