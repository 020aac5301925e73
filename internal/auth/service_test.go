package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgAuth "github.com/angelmondragon/astrosocial-backend/pkg/auth"
	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/security"
	"gorm.io/gorm"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "astrosocial",
		AccessTTL:     7 * 24 * time.Hour,
		RefreshTTL:    30 * 24 * time.Hour,
	}
}

func TestServiceLoginIssuesTokenPair(t *testing.T) {
	password := "star-secret"
	user := activeUser(t, password)
	cfg := testJWTConfig()

	svc := buildTestService(t, &stubUserRepo{user: user}, cfg)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  STAR@example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID || claims.RoleID != user.RoleID || claims.Name != user.FullName {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, err := pkgAuth.ParseRefreshToken(cfg, resp.RefreshToken); err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	if resp.User == nil || resp.User.LastLoginAt == nil {
		t.Fatalf("expected user with last login, got %+v", resp.User)
	}
}

func TestServiceLoginUniformFailures(t *testing.T) {
	password := "star-secret"
	cfg := testJWTConfig()

	cases := []struct {
		name     string
		repo     *stubUserRepo
		password string
		message  string
	}{
		{name: "unknown email", repo: &stubUserRepo{err: gorm.ErrRecordNotFound}, password: password, message: invalidCredentialsMessage},
		{name: "wrong password", repo: &stubUserRepo{user: activeUser(t, password)}, password: "nope-nope", message: invalidCredentialsMessage},
		{name: "inactive", repo: &stubUserRepo{user: inactive(activeUser(t, password))}, password: password, message: deactivatedMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := buildTestService(t, tc.repo, cfg)
			_, err := svc.Login(context.Background(), LoginRequest{Email: "star@example.com", Password: tc.password})
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized error, got %v", err)
			}
			if typed.Message() != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, typed.Message())
			}
		})
	}
}

func TestServiceLoginPropagatesLookupFailure(t *testing.T) {
	svc := buildTestService(t, &stubUserRepo{err: errors.New("db down")}, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "star@example.com", Password: "whatever"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestServiceRefresh(t *testing.T) {
	user := activeUser(t, "star-secret")
	cfg := testJWTConfig()
	svc := buildTestService(t, &stubUserRepo{user: user}, cfg)

	pair, err := pkgAuth.MintPair(cfg, time.Now().UTC(), pkgAuth.Identity{UserID: user.ID})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	fresh, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, fresh.AccessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Email != user.Email {
		t.Fatalf("expected email claim reloaded from user, got %q", claims.Email)
	}

	if _, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.AccessToken}); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected access token to be rejected as refresh token, got %v", err)
	}
}

func TestServiceLogoutIsStateless(t *testing.T) {
	svc := buildTestService(t, &stubUserRepo{}, testJWTConfig())
	if resp := svc.Logout(context.Background(), 1); resp.Message != "Logged out successfully" {
		t.Fatalf("unexpected logout message %q", resp.Message)
	}
}

func buildTestService(t *testing.T, repo *stubUserRepo, jwtCfg config.JWTConfig) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: jwtCfg})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           11,
		FullName:     "Star Gazer",
		Email:        "star@example.com",
		PasswordHash: hash,
		RoleID:       2,
	}
	user.Status = true
	return user
}

func inactive(user *models.User) *models.User {
	user.Status = false
	return user
}

type stubUserRepo struct {
	user    *models.User
	err     error
	rehashes int
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string, actor *int64) error {
	if s.user != nil && s.user.ID == id {
		s.user.PasswordHash = hash
		s.rehashes++
	}
	return nil
}

func TestServiceLoginUpgradesStaleHash(t *testing.T) {
	password := "star-secret"
	repo := &stubUserRepo{user: activeUser(t, password)}
	stale := repo.user.PasswordHash

	svc, err := NewService(ServiceParams{
		UserRepo:  repo,
		JWTConfig: testJWTConfig(),
		Password:  config.PasswordConfig{ArgonMemoryKB: 64, ArgonTime: 2},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Email: "star@example.com", Password: password}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if repo.rehashes != 1 || repo.user.PasswordHash == stale {
		t.Fatalf("expected one upgraded hash, got %d", repo.rehashes)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "star@example.com", Password: password}); err != nil {
		t.Fatalf("second login: %v", err)
	}
	if repo.rehashes != 1 {
		t.Fatalf("expected upgraded hash to stick, got %d rehashes", repo.rehashes)
	}
}
