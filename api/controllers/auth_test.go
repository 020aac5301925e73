package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/astrosocial-backend/internal/auth"
	"github.com/angelmondragon/astrosocial-backend/internal/otp"
	"github.com/angelmondragon/astrosocial-backend/internal/users"
	pkgAuth "github.com/angelmondragon/astrosocial-backend/pkg/auth"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
)

type stubAuthService struct {
	login   func(context.Context, auth.LoginRequest) (*auth.LoginResponse, error)
	refresh func(context.Context, auth.RefreshRequest) (*pkgAuth.TokenPair, error)
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login(ctx, req)
}

func (s stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*pkgAuth.TokenPair, error) {
	return s.refresh(ctx, req)
}

func (s stubAuthService) Logout(ctx context.Context, userID int64) *auth.LogoutResponse {
	return &auth.LogoutResponse{Message: "Logged out successfully"}
}

type stubOTPService struct {
	issue  func(context.Context, string) (*otp.IssueResult, error)
	verify func(context.Context, string, string) (*otp.VerifyResult, error)
}

func (s stubOTPService) Issue(ctx context.Context, email string) (*otp.IssueResult, error) {
	return s.issue(ctx, email)
}

func (s stubOTPService) Verify(ctx context.Context, email, code string) (*otp.VerifyResult, error) {
	return s.verify(ctx, email, code)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := stubAuthService{login: func(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
		if req.Email != "Seeker@Example.com" {
			t.Fatalf("unexpected email %q", req.Email)
		}
		return &auth.LoginResponse{
			User:      &users.UserDTO{ID: 5, Email: "seeker@example.com"},
			TokenPair: pkgAuth.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"},
		}, nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{"email":"Seeker@Example.com","password":"secret1"}`))
	rec := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := rec.Header().Get(accessTokenHeader); got != "access-token" {
		t.Fatalf("expected token header got %q", got)
	}
	env := decodeEnvelope(t, rec)
	var data struct {
		AccessToken  string         `json:"accessToken"`
		RefreshToken string         `json:"refreshToken"`
		User         *users.UserDTO `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.RefreshToken != "refresh-token" || data.User == nil || data.User.ID != 5 {
		t.Fatalf("unexpected payload %+v", data)
	}
}

func TestAuthLoginRejectsInvalidBody(t *testing.T) {
	svc := stubAuthService{login: func(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success || len(env.Errors) == 0 {
		t.Fatalf("expected field errors, got %+v", env)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	svc := stubAuthService{login: func(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid email or password")
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{"email":"a@b.co","password":"secret1"}`))
	rec := httptest.NewRecorder()
	AuthLogin(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Invalid email or password" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestAuthLogoutRequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthLogout(stubAuthService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/logout", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	AuthLogout(stubAuthService{}, nil).ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/api/users/logout", nil), 3))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestSendOTPNeverEchoesCode(t *testing.T) {
	svc := stubOTPService{issue: func(_ context.Context, email string) (*otp.IssueResult, error) {
		return &otp.IssueResult{Message: "OTP sent successfully to your email address", ExpiresIn: "10 minutes"}, nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/users/send-otp", strings.NewReader(`{"email":"seeker@example.com"}`))
	rec := httptest.NewRecorder()
	SendOTP(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if strings.Contains(string(env.Data), "otp\"") || !strings.Contains(string(env.Data), "10 minutes") {
		t.Fatalf("unexpected payload %s", env.Data)
	}
}

func TestVerifyOTPValidatesCodeShape(t *testing.T) {
	svc := stubOTPService{verify: func(context.Context, string, string) (*otp.VerifyResult, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/users/verify-otp", strings.NewReader(`{"email":"seeker@example.com","otp":"12ab"}`))
	rec := httptest.NewRecorder()
	VerifyOTP(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	svc := stubOTPService{verify: func(_ context.Context, email, code string) (*otp.VerifyResult, error) {
		if code != "123456" {
			t.Fatalf("unexpected code %q", code)
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "OTP has expired. Please request a new one.")
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/users/verify-otp", strings.NewReader(`{"email":"seeker@example.com","otp":"123456"}`))
	rec := httptest.NewRecorder()
	VerifyOTP(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "OTP has expired. Please request a new one." {
		t.Fatalf("unexpected message %q", env.Message)
	}
}
