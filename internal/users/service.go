package users

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/config"
	"github.com/angelmondragon/astrosocial-backend/pkg/db"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/email"
	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/pagination"
	"github.com/angelmondragon/astrosocial-backend/pkg/security"
	"gorm.io/gorm"
)

const (
	notFoundMessage  = "User not found"
	duplicateMessage = "User with this email or mobile already exists"
	roleGrantMessage = "You do not have permission to assign this role"
)

// Service defines the account management operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, actor *int64, req CreateUserRequest) (*UserDTO, error)
	List(ctx context.Context, q resource.ListQuery) ([]*UserDTO, pagination.Meta, error)
	Get(ctx context.Context, id int64) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*UserDTO, error)
	UpdateByID(ctx context.Context, actor *int64, req UpdateUserByIDRequest) (*UserDTO, error)
	Delete(ctx context.Context, actor *int64, id int64) (*UserDTO, error)
	ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error
	UpdateNotificationSettings(ctx context.Context, userID int64, req NotificationSettingsRequest) (*UserDTO, error)
	UpdatePrivacySettings(ctx context.Context, userID int64, req PrivacySettingsRequest) (*UserDTO, error)
}

type userStore interface {
	Create(ctx context.Context, row *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, q resource.ListQuery) ([]models.User, int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (int64, error)
	SetStatus(ctx context.Context, ids []int64, status bool, actor *int64) (int64, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string, actor *int64) error
}

type walletProvisioner interface {
	EnsureForUser(ctx context.Context, userID int64, actor *int64) (*models.Wallet, error)
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo     userStore
	Wallets  walletProvisioner
	Mailer   email.Sender
	Password config.PasswordConfig
	Logger   *logger.Logger
	// ReservedRoleIDs can only be granted by a user who already holds one of them.
	ReservedRoleIDs []int64
}

type service struct {
	repo     userStore
	wallets  walletProvisioner
	mailer   email.Sender
	password config.PasswordConfig
	logg     *logger.Logger
	reserved []int64
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Wallets == nil {
		return nil, fmt.Errorf("wallet provisioner is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("email sender is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:     params.Repo,
		wallets:  params.Wallets,
		mailer:   params.Mailer,
		password: params.Password,
		logg:     params.Logger,
		reserved: params.ReservedRoleIDs,
	}, nil
}

func (s *service) Create(ctx context.Context, actor *int64, req CreateUserRequest) (*UserDTO, error) {
	if err := s.checkRoleGrant(ctx, actor, req.RoleID); err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		FullName:               strings.TrimSpace(req.FullName),
		Email:                  normalizeEmail(req.Email),
		Mobile:                 strings.TrimSpace(req.Mobile),
		PasswordHash:           hash,
		CountryID:              enums.DefaultCountryID,
		StateID:                enums.DefaultStateID,
		CityID:                 enums.DefaultCityID,
		RoleID:                 enums.DefaultRoleID,
		PreferredContentFormat: enums.ContentFormatText,
		NotificationSettings:   models.DefaultNotificationSettings(),
	}
	req.ProfileFields.applyTo(user)
	user.FixedRoleID = user.RoleID
	user.StampCreated(actor)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, mapWriteError(err, "create user")
	}

	ctx = s.logg.WithUserID(ctx, user.ID)
	if _, err := s.wallets.EnsureForUser(ctx, user.ID, actor); err != nil {
		s.logg.Error(ctx, "user.wallet_provision_failed", err)
	}
	if err := s.mailer.Send(ctx, email.Message{
		To:       user.Email,
		Template: email.TemplateWelcome,
		Data:     map[string]any{"Name": user.FullName, "Email": user.Email},
	}); err != nil {
		s.logg.Error(ctx, "user.welcome_email_failed", err)
	}
	s.logg.Info(ctx, "user.created")
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, q resource.ListQuery) ([]*UserDTO, pagination.Meta, error) {
	q.Params = q.Params.Normalize()
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return FromModels(rows), pagination.NewMeta(q.Params, total), nil
}

func (s *service) Get(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*UserDTO, error) {
	if err := s.checkRoleGrant(ctx, &userID, req.RoleID); err != nil {
		return nil, err
	}
	changes := req.ProfileFields.Changes()
	if err := s.identityChanges(changes, req.FullName, req.Email, req.Mobile, req.Password, req.Status); err != nil {
		return nil, err
	}
	return s.update(ctx, &userID, userID, changes)
}

func (s *service) UpdateByID(ctx context.Context, actor *int64, req UpdateUserByIDRequest) (*UserDTO, error) {
	if err := s.checkRoleGrant(ctx, actor, req.RoleID); err != nil {
		return nil, err
	}
	changes := map[string]any{}
	if req.Address != nil {
		changes["address"] = req.Address
	}
	if req.RoleID != nil {
		changes["role_id"] = *req.RoleID
	}
	if err := s.identityChanges(changes, req.FullName, req.Email, req.Mobile, req.Password, req.Status); err != nil {
		return nil, err
	}
	return s.update(ctx, actor, req.ID, changes)
}

func (s *service) Delete(ctx context.Context, actor *int64, id int64) (*UserDTO, error) {
	affected, err := s.repo.SetStatus(ctx, []int64{id}, false, actor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate user")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return s.Get(ctx, id)
}

func (s *service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := security.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "Current password is incorrect")
	}
	hash, err := security.HashPassword(req.NewPassword, s.password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, userID, hash, &userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return nil
}

func (s *service) UpdateNotificationSettings(ctx context.Context, userID int64, req NotificationSettingsRequest) (*UserDTO, error) {
	return s.update(ctx, &userID, userID, map[string]any{"notification_settings": req.toModel()})
}

func (s *service) UpdatePrivacySettings(ctx context.Context, userID int64, req PrivacySettingsRequest) (*UserDTO, error) {
	return s.update(ctx, &userID, userID, map[string]any{"privacy_settings": req.toModel()})
}

func (s *service) update(ctx context.Context, actor *int64, id int64, changes map[string]any) (*UserDTO, error) {
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "At least one field must be provided for update")
	}
	changes["updated_by"] = actor
	affected, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, mapWriteError(err, "update user")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return s.Get(ctx, id)
}

func (s *service) identityChanges(changes map[string]any, fullName, mail, mobile, password *string, status *bool) error {
	if fullName != nil {
		changes["full_name"] = strings.TrimSpace(*fullName)
	}
	if mail != nil {
		changes["email"] = normalizeEmail(*mail)
	}
	if mobile != nil {
		changes["mobile"] = strings.TrimSpace(*mobile)
	}
	if status != nil {
		changes["status"] = *status
	}
	if password != nil {
		hash, err := security.HashPassword(*password, s.password)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		changes["password_hash"] = hash
	}
	return nil
}

// checkRoleGrant lets anyone pick an ordinary role. A reserved role needs an
// actor whose stored role is itself reserved; the token's role claim is not consulted.
func (s *service) checkRoleGrant(ctx context.Context, actor *int64, roleID *int64) error {
	if roleID == nil || !slices.Contains(s.reserved, *roleID) {
		return nil
	}
	if actor != nil {
		caller, err := s.load(ctx, *actor)
		switch {
		case err == nil && slices.Contains(s.reserved, caller.RoleID):
			return nil
		case err != nil && !pkgerrors.IsCode(err, pkgerrors.CodeNotFound):
			return err
		}
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, roleGrantMessage)
}

func (s *service) load(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}

func mapWriteError(err error, op string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, duplicateMessage)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
