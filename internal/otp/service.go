package otp

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
	"github.com/angelmondragon/astrosocial-backend/pkg/email"
	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/metrics"
	"github.com/angelmondragon/astrosocial-backend/pkg/security"
	"gorm.io/gorm"
)

const (
	msgUserNotFound   = "User not found with this email address"
	msgDeactivated    = "Account is deactivated"
	msgSendFailed     = "Failed to send OTP email. Please try again."
	msgInvalid        = "Invalid OTP"
	msgExpired        = "OTP has expired. Please request a new one."
	msgAlreadyUsed    = "OTP has already been used"
	msgVerifyNotFound = "User not found"
)

// IssueResult is returned to the client after a code is sent. It never carries the code.
type IssueResult struct {
	Message   string `json:"message"`
	ExpiresIn string `json:"expiresIn"`
}

// VerifyResult is the login payload produced by a consumed code.
type VerifyResult struct {
	User *users.UserDTO `json:"user"`
	pkgAuth.TokenPair
}

// Service issues and verifies email login codes.
type Service interface {
	Issue(ctx context.Context, email string) (*IssueResult, error)
	Verify(ctx context.Context, email, code string) (*VerifyResult, error)
}

type codeStore interface {
	Issue(ctx context.Context, row *models.OTP) (int64, error)
	FindLatestActive(ctx context.Context, email, code string, typeID int64) (*models.OTP, error)
	Deactivate(ctx context.Context, id int64) error
	Consume(ctx context.Context, id int64) (bool, error)
}

type userLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// ServiceParams bundles the dependencies required to build an OTP service.
type ServiceParams struct {
	Codes   codeStore
	Users   userLookup
	Mailer  email.Sender
	OTP     config.OTPConfig
	JWT     config.JWTConfig
	Metrics *metrics.AuthMetrics
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	codes   codeStore
	users   userLookup
	mailer  email.Sender
	cfg     config.OTPConfig
	jwtCfg  config.JWTConfig
	metrics *metrics.AuthMetrics
	logg    *logger.Logger
	now     func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Codes == nil {
		return nil, fmt.Errorf("otp repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("email sender is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	cfg := params.OTP
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 6
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		codes:   params.Codes,
		users:   params.Users,
		mailer:  params.Mailer,
		cfg:     cfg,
		jwtCfg:  params.JWT,
		metrics: params.Metrics,
		logg:    params.Logger,
		now:     now,
	}, nil
}

func (s *service) Issue(ctx context.Context, address string) (*IssueResult, error) {
	address = normalizeEmail(address)
	user, err := s.users.FindByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.OTPIssued("unknown_user")
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgUserNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.Status {
		s.metrics.OTPIssued("inactive_user")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgDeactivated)
	}

	code, err := security.GenerateNumericCode(s.cfg.CodeLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	now := s.now()
	row := &models.OTP{
		Code:      code,
		Email:     address,
		OTPTypeID: enums.OTPTypeLogin,
		ExpiresAt: now.Add(s.cfg.TTL),
	}
	row.StampCreated(&user.ID)

	superseded, err := s.codes.Issue(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store otp")
	}

	ctx = s.logg.WithFields(s.logg.WithUserID(ctx, user.ID), map[string]any{
		"otp_id":     row.ID,
		"superseded": superseded,
	})
	expiresIn := humanizeTTL(s.cfg.TTL)
	err = s.mailer.Send(ctx, email.Message{
		To:       address,
		Template: email.TemplateOTP,
		Data: map[string]any{
			"Name":      user.FullName,
			"Code":      code,
			"ExpiresIn": expiresIn,
		},
	})
	if err != nil {
		s.logg.Error(ctx, "otp.send_failed", err)
		if deactivateErr := s.codes.Deactivate(ctx, row.ID); deactivateErr != nil {
			s.logg.Error(ctx, "otp.deactivate_failed", deactivateErr)
		}
		s.metrics.OTPIssued("send_failed")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, msgSendFailed).Public()
	}

	s.metrics.OTPIssued("sent")
	s.logg.Info(ctx, "otp.issued")
	return &IssueResult{
		Message:   "OTP sent successfully to your email address",
		ExpiresIn: expiresIn,
	}, nil
}

func (s *service) Verify(ctx context.Context, address, code string) (*VerifyResult, error) {
	address = normalizeEmail(address)
	code = strings.TrimSpace(code)

	row, err := s.codes.FindLatestActive(ctx, address, code, enums.OTPTypeLogin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.OTPVerified("invalid")
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalid)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup otp")
	}

	now := s.now()
	if row.Expired(now) {
		if err := s.codes.Deactivate(ctx, row.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate otp")
		}
		s.metrics.OTPVerified("expired")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgExpired)
	}
	if row.IsUsed {
		s.metrics.OTPVerified("used")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgAlreadyUsed)
	}

	user, err := s.users.FindByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgVerifyNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.Status {
		s.metrics.OTPVerified("inactive_user")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgDeactivated)
	}

	consumed, err := s.codes.Consume(ctx, row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "consume otp")
	}
	if !consumed {
		s.metrics.OTPVerified("used")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgAlreadyUsed)
	}

	pair, err := pkgAuth.MintPair(s.jwtCfg, now, pkgAuth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.FullName,
		RoleID: user.RoleID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint tokens")
	}

	ctx = s.logg.WithUserID(ctx, user.ID)
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logg.Warn(ctx, "otp.last_login_update_failed")
	} else {
		user.LastLoginAt = &now
	}

	s.metrics.OTPVerified("success")
	s.metrics.Login("otp", "success")
	s.logg.Info(ctx, "otp.verified")
	return &VerifyResult{User: users.FromModel(user), TokenPair: pair}, nil
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func humanizeTTL(ttl time.Duration) string {
	minutes := int(ttl.Round(time.Minute) / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
