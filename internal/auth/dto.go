package auth

import "github.com/warikan-app/warikan/internal/user"

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Handle   string `json:"handle" validate:"required,min=3,max=30,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the request body for login. Login is a handle or
// an email address.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned on successful login
type SessionResponse struct {
	Token string             `json:"token"`
	User  *user.UserResponse `json:"user"`
}
