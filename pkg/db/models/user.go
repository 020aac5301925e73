package models

import (
	"time"

	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ToggleSetting is one named on/off preference.
type ToggleSetting struct {
	Name    string `json:"settingName"`
	Enabled bool   `json:"enabled"`
}

// PrivacySetting is one named privacy switch.
type PrivacySetting struct {
	Name    string `json:"privacyName"`
	Enabled bool   `json:"enabled"`
}

// User represents the canonical identity entity. Astrologer profile fields live
// on the same row and stay empty for regular members.
type User struct {
	ID                     int64                                `gorm:"column:user_id;primaryKey;autoIncrement"`
	FullName               string                               `gorm:"column:full_name;not null"`
	Mobile                 string                               `gorm:"column:mobile;not null;uniqueIndex"`
	Email                  string                               `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash           string                               `gorm:"column:password_hash;not null"`
	Address                *string                              `gorm:"column:address"`
	CountryID              int64                                `gorm:"column:country_id;not null;default:1"`
	StateID                int64                                `gorm:"column:state_id;not null;default:1"`
	CityID                 int64                                `gorm:"column:city_id;not null;default:1"`
	RoleID                 int64                                `gorm:"column:role_id;not null;default:1;index"`
	FixedRoleID            int64                                `gorm:"column:fixed_role_id;not null;default:1;<-:create"`
	OnlineStatus           bool                                 `gorm:"column:online_status;not null;default:false"`
	Gender                 *enums.Gender                        `gorm:"column:gender"`
	UserImg                *string                              `gorm:"column:user_img"`
	AppCategoryID          *int64                               `gorm:"column:app_category_id"`
	LanguageID             *int64                               `gorm:"column:language_id"`
	PreferredContentFormat enums.ContentFormat                  `gorm:"column:preferred_content_format;not null;default:'Text'"`
	NotificationSettings   datatypes.JSONSlice[ToggleSetting]   `gorm:"column:notification_settings"`
	PrivacySettings        datatypes.JSONSlice[PrivacySetting]  `gorm:"column:privacy_settings"`
	DateOfBirth            *time.Time                           `gorm:"column:date_of_birth"`
	TimeOfBirth            *string                              `gorm:"column:time_of_birth"`
	PlaceOfBirth           *string                              `gorm:"column:place_of_birth"`
	Pincode                *string                              `gorm:"column:pincode"`
	Specialty              *string                              `gorm:"column:specialty"`
	Experience             int                                  `gorm:"column:experience;not null;default:0"`
	ConsultationFees       decimal.Decimal                      `gorm:"column:consultation_fees;type:numeric(12,2);not null;default:0"`
	ConsultationCount      int64                                `gorm:"column:consultation_count;not null;default:0"`
	AboutUs                *string                              `gorm:"column:about_us"`
	BankHolderName         *string                              `gorm:"column:bank_holder_name"`
	BankAccountNo          *string                              `gorm:"column:bank_account_no"`
	Branch                 *string                              `gorm:"column:branch"`
	IFSCCode               *string                              `gorm:"column:ifsc_code"`
	PassBookImg            *string                              `gorm:"column:pass_book_img"`
	PanCardImg             *string                              `gorm:"column:pan_card_img"`
	AadhaarCardImg         *string                              `gorm:"column:aadhaar_card_img"`
	TDSCertificateImg      *string                              `gorm:"column:tds_certificate_img"`
	LastLoginAt            *time.Time                           `gorm:"column:last_login_at"`
	Audit
}

func (User) TableName() string { return "users" }

// DefaultNotificationSettings seeds new accounts.
func DefaultNotificationSettings() []ToggleSetting {
	return []ToggleSetting{
		{Name: "Push Notifications", Enabled: true},
		{Name: "Email Notifications", Enabled: true},
		{Name: "Live Session Alerts", Enabled: true},
		{Name: "Daily Horoscope", Enabled: true},
	}
}
