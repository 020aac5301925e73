package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/astrosocial-backend/internal/users"
	pkgAuth "github.com/angelmondragon/astrosocial-backend/pkg/auth"
	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/metrics"
	"github.com/angelmondragon/astrosocial-backend/pkg/security"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "Invalid email or password"
	deactivatedMessage        = "Account is deactivated"
	invalidRefreshMessage     = "Invalid or expired refresh token"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*pkgAuth.TokenPair, error)
	Logout(ctx context.Context, userID int64) *LogoutResponse
}

type service struct {
	users    userRepository
	jwtCfg   config.JWTConfig
	password config.PasswordConfig
	metrics  *metrics.AuthMetrics
	now      func() time.Time
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string, actor *int64) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo  userRepository
	JWTConfig config.JWTConfig
	// Password holds the current argon2 costs; older hashes are upgraded on login.
	Password  config.PasswordConfig
	Metrics   *metrics.AuthMetrics
	Now       func() time.Time
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		users:    params.UserRepo,
		jwtCfg:   params.JWTConfig,
		password: params.Password,
		metrics:  params.Metrics,
		now:      now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now
	s.upgradeHash(ctx, user, req.Password)

	pair, err := pkgAuth.MintPair(s.jwtCfg, now, identity(user))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	s.metrics.Login("password", "success")

	return &LoginResponse{User: users.FromModel(user), TokenPair: pair}, nil
}

// Refresh re-issues both tokens from a valid refresh token. Nothing is revoked.
func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*pkgAuth.TokenPair, error) {
	claims, err := pkgAuth.ParseRefreshToken(s.jwtCfg, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		s.metrics.Login("refresh", "invalid_token")
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, invalidRefreshMessage)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidRefreshMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.Status {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, deactivatedMessage)
	}

	pair, err := pkgAuth.MintPair(s.jwtCfg, s.now(), identity(user))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	s.metrics.Login("refresh", "success")
	return &pair, nil
}

// Logout is acknowledged without server-side state; clients discard their tokens.
func (s *service) Logout(ctx context.Context, userID int64) *LogoutResponse {
	return &LogoutResponse{Message: "Logged out successfully"}
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.ToLower(strings.TrimSpace(email))
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.Login("password", "unknown_user")
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.Status {
		s.metrics.Login("password", "inactive_user")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, deactivatedMessage)
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		s.metrics.Login("password", "bad_password")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

// upgradeHash re-derives the stored hash when the configured argon2 costs changed.
// A failed write leaves the old hash in place.
func (s *service) upgradeHash(ctx context.Context, user *models.User, password string) {
	if !security.NeedsRehash(user.PasswordHash, s.password) {
		return
	}
	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash, &user.ID); err != nil {
		s.metrics.Login("password", "rehash_failed")
		return
	}
	user.PasswordHash = hash
	s.metrics.Login("password", "rehashed")
}

func identity(user *models.User) pkgAuth.Identity {
	return pkgAuth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.FullName,
		RoleID: user.RoleID,
	}
}
