package auth

import "github.com/osa911/hostelhub/internal/api/dto/v1/user"

// SignupRequest represents the registration request payload
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries a Google ID token
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// AuthResponse is returned by every sign-in flow
type AuthResponse struct {
	User  user.UserResponse `json:"user"`
	Token string            `json:"token"`
}
