package auth

import "github.com/golang-jwt/jwt/v5"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Identity captures the data available when minting tokens for a user.
type Identity struct {
	UserID int64
	Email  string
	Name   string
	RoleID int64
}

// AccessTokenClaims represents the bearer JWT issued to clients.
type AccessTokenClaims struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	RoleID int64  `json:"role_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// RefreshTokenClaims carries only identity; it cannot authorize API calls.
type RefreshTokenClaims struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is returned by every login flow.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
