package auth

import (
	"github.com/angelmondragon/astrosocial-backend/internal/users"
	pkgAuth "github.com/angelmondragon/astrosocial-backend/pkg/auth"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LoginResponse contains the user and the tokens produced by a successful login.
type LoginResponse struct {
	User *users.UserDTO `json:"user"`
	pkgAuth.TokenPair
}

// LogoutResponse is returned by the stateless logout endpoint.
type LogoutResponse struct {
	Message string `json:"message"`
}
