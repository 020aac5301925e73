package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	jwtSigningMethod = jwt.SigningMethodHS256

	ErrWrongTokenType = errors.New("unexpected token type")
	ErrMissingSubject = errors.New("token has no user id")
)

// MintAccessToken issues a signed access JWT using the configured TTL.
func MintAccessToken(cfg config.JWTConfig, now time.Time, id Identity) (string, error) {
	if cfg.AccessSecret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.AccessTTL <= 0 {
		return "", fmt.Errorf("jwt access ttl must be positive")
	}
	if id.UserID <= 0 {
		return "", fmt.Errorf("user id is required")
	}

	claims := AccessTokenClaims{
		ID:               id.UserID,
		UserID:           id.UserID,
		Email:            id.Email,
		Name:             id.Name,
		RoleID:           id.RoleID,
		Type:             TokenTypeAccess,
		RegisteredClaims: registered(cfg, now, cfg.AccessTTL, id.UserID),
	}
	return sign(claims, cfg.AccessSecret)
}

// MintRefreshToken issues a refresh JWT signed with the refresh secret.
func MintRefreshToken(cfg config.JWTConfig, now time.Time, id Identity) (string, error) {
	if cfg.RefreshSecret == "" {
		return "", fmt.Errorf("jwt refresh secret is required")
	}
	if cfg.RefreshTTL <= 0 {
		return "", fmt.Errorf("jwt refresh ttl must be positive")
	}
	if id.UserID <= 0 {
		return "", fmt.Errorf("user id is required")
	}

	claims := RefreshTokenClaims{
		ID:               id.UserID,
		UserID:           id.UserID,
		Type:             TokenTypeRefresh,
		RegisteredClaims: registered(cfg, now, cfg.RefreshTTL, id.UserID),
	}
	return sign(claims, cfg.RefreshSecret)
}

// MintPair issues both tokens for the same identity.
func MintPair(cfg config.JWTConfig, now time.Time, id Identity) (TokenPair, error) {
	access, err := MintAccessToken(cfg, now, id)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := MintRefreshToken(cfg, now, id)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccessToken validates the JWT string and returns typed claims.
func ParseAccessToken(cfg config.JWTConfig, tokenString string) (*AccessTokenClaims, error) {
	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	claims := &AccessTokenClaims{}
	if err := parse(cfg, cfg.AccessSecret, tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// ParseRefreshToken validates a refresh JWT against the refresh secret.
func ParseRefreshToken(cfg config.JWTConfig, tokenString string) (*RefreshTokenClaims, error) {
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("jwt refresh secret is required")
	}
	claims := &RefreshTokenClaims{}
	if err := parse(cfg, cfg.RefreshSecret, tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeRefresh {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

func registered(cfg config.JWTConfig, now time.Time, ttl time.Duration, userID int64) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
}

func sign(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

func parse(cfg config.JWTConfig, secret, tokenString string, claims jwt.Claims) error {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwtSigningMethod.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(secret), nil
		},
		opts...,
	)
	return err
}
