package users

import (
	"strings"
	"time"

	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID                     int64                   `json:"user_id"`
	FullName               string                  `json:"fullName"`
	Mobile                 string                  `json:"mobile"`
	Email                  string                  `json:"email"`
	Address                *string                 `json:"address,omitempty"`
	CountryID              int64                   `json:"country_id"`
	StateID                int64                   `json:"state_id"`
	CityID                 int64                   `json:"city_id"`
	RoleID                 int64                   `json:"role_id"`
	FixedRoleID            int64                   `json:"fixed_role_id"`
	OnlineStatus           bool                    `json:"online_status"`
	Gender                 *enums.Gender           `json:"gender,omitempty"`
	UserImg                *string                 `json:"user_img,omitempty"`
	AppCategoryID          *int64                  `json:"app_category_id,omitempty"`
	LanguageID             *int64                  `json:"language_id,omitempty"`
	PreferredContentFormat enums.ContentFormat     `json:"preferedContentFormat"`
	NotificationSettings   []models.ToggleSetting  `json:"notificationSettings"`
	PrivacySettings        []models.PrivacySetting `json:"manageYourPrivacy"`
	DateOfBirth            *string                 `json:"dateOfBirth,omitempty"`
	TimeOfBirth            *string                 `json:"timeOfBirth,omitempty"`
	PlaceOfBirth           *string                 `json:"placeOfBirth,omitempty"`
	Pincode                *string                 `json:"pincode,omitempty"`
	Specialty              *string                 `json:"specialty,omitempty"`
	Experience             int                     `json:"experience"`
	ConsultationFees       decimal.Decimal         `json:"consultation_fees"`
	ConsultationCount      int64                   `json:"mlnsOfConsultation"`
	AboutUs                *string                 `json:"aboutUs,omitempty"`
	BankHolderName         *string                 `json:"bankHolderName,omitempty"`
	BankAccountNo          *string                 `json:"bankAccountNo,omitempty"`
	Branch                 *string                 `json:"branch,omitempty"`
	IFSCCode               *string                 `json:"ifscCode,omitempty"`
	PassBookImg            *string                 `json:"passBookImg,omitempty"`
	PanCardImg             *string                 `json:"panCardImg,omitempty"`
	AadhaarCardImg         *string                 `json:"adhaarCardImg,omitempty"`
	TDSCertificateImg      *string                 `json:"tdsCertificateImg,omitempty"`
	LastLoginAt            *time.Time              `json:"last_login_at,omitempty"`
	Status                 bool                    `json:"status"`
	CreatedBy              *int64                  `json:"created_by"`
	UpdatedBy              *int64                  `json:"updated_by"`
	CreatedAt              time.Time               `json:"created_at"`
	UpdatedAt              time.Time               `json:"updated_at"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	var dob *string
	if u.DateOfBirth != nil {
		formatted := u.DateOfBirth.Format(dateLayout)
		dob = &formatted
	}

	return &UserDTO{
		ID:                     u.ID,
		FullName:               u.FullName,
		Mobile:                 u.Mobile,
		Email:                  u.Email,
		Address:                u.Address,
		CountryID:              u.CountryID,
		StateID:                u.StateID,
		CityID:                 u.CityID,
		RoleID:                 u.RoleID,
		FixedRoleID:            u.FixedRoleID,
		OnlineStatus:           u.OnlineStatus,
		Gender:                 u.Gender,
		UserImg:                u.UserImg,
		AppCategoryID:          u.AppCategoryID,
		LanguageID:             u.LanguageID,
		PreferredContentFormat: u.PreferredContentFormat,
		NotificationSettings:   append([]models.ToggleSetting{}, u.NotificationSettings...),
		PrivacySettings:        append([]models.PrivacySetting{}, u.PrivacySettings...),
		DateOfBirth:            dob,
		TimeOfBirth:            u.TimeOfBirth,
		PlaceOfBirth:           u.PlaceOfBirth,
		Pincode:                u.Pincode,
		Specialty:              u.Specialty,
		Experience:             u.Experience,
		ConsultationFees:       u.ConsultationFees,
		ConsultationCount:      u.ConsultationCount,
		AboutUs:                u.AboutUs,
		BankHolderName:         u.BankHolderName,
		BankAccountNo:          u.BankAccountNo,
		Branch:                 u.Branch,
		IFSCCode:               u.IFSCCode,
		PassBookImg:            u.PassBookImg,
		PanCardImg:             u.PanCardImg,
		AadhaarCardImg:         u.AadhaarCardImg,
		TDSCertificateImg:      u.TDSCertificateImg,
		LastLoginAt:            u.LastLoginAt,
		Status:                 u.Status,
		CreatedBy:              u.CreatedBy,
		UpdatedBy:              u.UpdatedBy,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

// FromModels maps a slice of users.
func FromModels(list []models.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

// ProfileFields are the optional attributes shared by create and update payloads.
type ProfileFields struct {
	Address                *string                 `json:"address,omitempty" validate:"omitempty,min=10,max=500"`
	CountryID              *int64                  `json:"country_id,omitempty" validate:"omitempty,gt=0"`
	StateID                *int64                  `json:"state_id,omitempty" validate:"omitempty,gt=0"`
	CityID                 *int64                  `json:"city_id,omitempty" validate:"omitempty,gt=0"`
	RoleID                 *int64                  `json:"role_id,omitempty" validate:"omitempty,gt=0"`
	OnlineStatus           *bool                   `json:"online_status,omitempty"`
	Gender                 *enums.Gender           `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	UserImg                *string                 `json:"user_img,omitempty" validate:"omitempty,url"`
	AppCategoryID          *int64                  `json:"app_category_id,omitempty" validate:"omitempty,gt=0"`
	LanguageID             *int64                  `json:"language_id,omitempty" validate:"omitempty,gt=0"`
	PreferredContentFormat *enums.ContentFormat    `json:"preferedContentFormat,omitempty" validate:"omitempty,oneof=Text Audio"`
	NotificationSettings   []models.ToggleSetting  `json:"notificationSettings,omitempty" validate:"omitempty,dive"`
	PrivacySettings        []models.PrivacySetting `json:"manageYourPrivacy,omitempty" validate:"omitempty,dive"`
	DateOfBirth            *string                 `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TimeOfBirth            *string                 `json:"timeOfBirth,omitempty" validate:"omitempty,max=20"`
	PlaceOfBirth           *string                 `json:"placeOfBirth,omitempty" validate:"omitempty,max=200"`
	Pincode                *string                 `json:"pincode,omitempty" validate:"omitempty,max=10"`
	Specialty              *string                 `json:"specialty,omitempty" validate:"omitempty,max=200"`
	Experience             *int                    `json:"experience,omitempty" validate:"omitempty,gte=0"`
	ConsultationFees       *decimal.Decimal        `json:"consultation_fees,omitempty" validate:"omitempty,gte=0"`
	ConsultationCount      *int64                  `json:"mlnsOfConsultation,omitempty" validate:"omitempty,gte=0"`
	AboutUs                *string                 `json:"aboutUs,omitempty" validate:"omitempty,max=1000"`
	BankHolderName         *string                 `json:"bankHolderName,omitempty" validate:"omitempty,max=100"`
	BankAccountNo          *string                 `json:"bankAccountNo,omitempty" validate:"omitempty,max=20"`
	Branch                 *string                 `json:"branch,omitempty" validate:"omitempty,max=200"`
	IFSCCode               *string                 `json:"ifscCode,omitempty" validate:"omitempty,max=11"`
	PassBookImg            *string                 `json:"passBookImg,omitempty" validate:"omitempty,url"`
	PanCardImg             *string                 `json:"panCardImg,omitempty" validate:"omitempty,url"`
	AadhaarCardImg         *string                 `json:"adhaarCardImg,omitempty" validate:"omitempty,url"`
	TDSCertificateImg      *string                 `json:"tdsCertificateImg,omitempty" validate:"omitempty,url"`
}

// Changes maps the populated fields to their column names.
func (p ProfileFields) Changes() map[string]any {
	changes := map[string]any{}
	set := func(col string, present bool, value any) {
		if present {
			changes[col] = value
		}
	}
	set("address", p.Address != nil, p.Address)
	set("country_id", p.CountryID != nil, deref(p.CountryID))
	set("state_id", p.StateID != nil, deref(p.StateID))
	set("city_id", p.CityID != nil, deref(p.CityID))
	set("role_id", p.RoleID != nil, deref(p.RoleID))
	set("online_status", p.OnlineStatus != nil, deref(p.OnlineStatus))
	set("gender", p.Gender != nil, p.Gender)
	set("user_img", p.UserImg != nil, p.UserImg)
	set("app_category_id", p.AppCategoryID != nil, p.AppCategoryID)
	set("language_id", p.LanguageID != nil, p.LanguageID)
	set("preferred_content_format", p.PreferredContentFormat != nil, deref(p.PreferredContentFormat))
	if p.NotificationSettings != nil {
		changes["notification_settings"] = notificationSettings(p.NotificationSettings)
	}
	if p.PrivacySettings != nil {
		changes["privacy_settings"] = privacySettings(p.PrivacySettings)
	}
	if p.DateOfBirth != nil {
		changes["date_of_birth"] = parseDate(*p.DateOfBirth)
	}
	set("time_of_birth", p.TimeOfBirth != nil, p.TimeOfBirth)
	set("place_of_birth", p.PlaceOfBirth != nil, p.PlaceOfBirth)
	set("pincode", p.Pincode != nil, p.Pincode)
	set("specialty", p.Specialty != nil, p.Specialty)
	set("experience", p.Experience != nil, deref(p.Experience))
	set("consultation_fees", p.ConsultationFees != nil, deref(p.ConsultationFees))
	set("consultation_count", p.ConsultationCount != nil, deref(p.ConsultationCount))
	set("about_us", p.AboutUs != nil, p.AboutUs)
	set("bank_holder_name", p.BankHolderName != nil, p.BankHolderName)
	set("bank_account_no", p.BankAccountNo != nil, p.BankAccountNo)
	set("branch", p.Branch != nil, p.Branch)
	set("ifsc_code", p.IFSCCode != nil, p.IFSCCode)
	set("pass_book_img", p.PassBookImg != nil, p.PassBookImg)
	set("pan_card_img", p.PanCardImg != nil, p.PanCardImg)
	set("aadhaar_card_img", p.AadhaarCardImg != nil, p.AadhaarCardImg)
	set("tds_certificate_img", p.TDSCertificateImg != nil, p.TDSCertificateImg)
	return changes
}

func (p ProfileFields) applyTo(u *models.User) {
	u.Address = p.Address
	if p.CountryID != nil {
		u.CountryID = *p.CountryID
	}
	if p.StateID != nil {
		u.StateID = *p.StateID
	}
	if p.CityID != nil {
		u.CityID = *p.CityID
	}
	if p.RoleID != nil {
		u.RoleID = *p.RoleID
	}
	if p.OnlineStatus != nil {
		u.OnlineStatus = *p.OnlineStatus
	}
	u.Gender = p.Gender
	u.UserImg = p.UserImg
	u.AppCategoryID = p.AppCategoryID
	u.LanguageID = p.LanguageID
	if p.PreferredContentFormat != nil {
		u.PreferredContentFormat = *p.PreferredContentFormat
	}
	if p.NotificationSettings != nil {
		u.NotificationSettings = notificationSettings(p.NotificationSettings)
	}
	if p.PrivacySettings != nil {
		u.PrivacySettings = privacySettings(p.PrivacySettings)
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = parseDate(*p.DateOfBirth)
	}
	u.TimeOfBirth = p.TimeOfBirth
	u.PlaceOfBirth = p.PlaceOfBirth
	u.Pincode = p.Pincode
	u.Specialty = p.Specialty
	if p.Experience != nil {
		u.Experience = *p.Experience
	}
	if p.ConsultationFees != nil {
		u.ConsultationFees = *p.ConsultationFees
	}
	if p.ConsultationCount != nil {
		u.ConsultationCount = *p.ConsultationCount
	}
	u.AboutUs = p.AboutUs
	u.BankHolderName = p.BankHolderName
	u.BankAccountNo = p.BankAccountNo
	u.Branch = p.Branch
	u.IFSCCode = p.IFSCCode
	u.PassBookImg = p.PassBookImg
	u.PanCardImg = p.PanCardImg
	u.AadhaarCardImg = p.AadhaarCardImg
	u.TDSCertificateImg = p.TDSCertificateImg
}

// CreateUserRequest is the public registration payload.
type CreateUserRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Mobile   string `json:"mobile" validate:"required,mobile"`
	ProfileFields
}

// UpdateProfileRequest updates the caller's own profile.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName,omitempty" validate:"omitempty,min=2,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Mobile   *string `json:"mobile,omitempty" validate:"omitempty,mobile"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=128"`
	Status   *bool   `json:"status,omitempty"`
	ProfileFields
}

// UpdateUserByIDRequest carries the target id in the body.
type UpdateUserByIDRequest struct {
	ID       int64   `json:"id" validate:"required,gt=0"`
	FullName *string `json:"fullName,omitempty" validate:"omitempty,min=2,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Mobile   *string `json:"mobile,omitempty" validate:"omitempty,mobile"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=128"`
	Address  *string `json:"address,omitempty" validate:"omitempty,min=10,max=500"`
	RoleID   *int64  `json:"role_id,omitempty" validate:"omitempty,gt=0"`
	Status   *bool   `json:"status,omitempty"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type NotificationSettingsRequest struct {
	Settings []SettingInput `json:"notificationSettings" validate:"required,min=1,dive"`
}

type PrivacySettingsRequest struct {
	Settings []PrivacyInput `json:"manageYourPrivacy" validate:"required,min=1,dive"`
}

type SettingInput struct {
	Name    string `json:"settingName" validate:"required"`
	Enabled *bool  `json:"enabled" validate:"required"`
}

type PrivacyInput struct {
	Name    string `json:"privacyName" validate:"required"`
	Enabled *bool  `json:"enabled" validate:"required"`
}

func (r NotificationSettingsRequest) toModel() datatypes.JSONSlice[models.ToggleSetting] {
	out := make([]models.ToggleSetting, 0, len(r.Settings))
	for _, s := range r.Settings {
		out = append(out, models.ToggleSetting{Name: strings.TrimSpace(s.Name), Enabled: deref(s.Enabled)})
	}
	return out
}

func (r PrivacySettingsRequest) toModel() datatypes.JSONSlice[models.PrivacySetting] {
	out := make([]models.PrivacySetting, 0, len(r.Settings))
	for _, s := range r.Settings {
		out = append(out, models.PrivacySetting{Name: strings.TrimSpace(s.Name), Enabled: deref(s.Enabled)})
	}
	return out
}

func notificationSettings(in []models.ToggleSetting) datatypes.JSONSlice[models.ToggleSetting] {
	out := make([]models.ToggleSetting, 0, len(in))
	for _, s := range in {
		out = append(out, models.ToggleSetting{Name: strings.TrimSpace(s.Name), Enabled: s.Enabled})
	}
	return out
}

func privacySettings(in []models.PrivacySetting) datatypes.JSONSlice[models.PrivacySetting] {
	out := make([]models.PrivacySetting, 0, len(in))
	for _, s := range in {
		out = append(out, models.PrivacySetting{Name: strings.TrimSpace(s.Name), Enabled: s.Enabled})
	}
	return out
}

func parseDate(value string) *time.Time {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &parsed
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
