package models

import "time"

// OTP is a single issued one-time code. Rows are never refreshed; a new
// request always creates a new row.
type OTP struct {
	ID        int64     `gorm:"column:otp_id;primaryKey;autoIncrement" json:"otp_id"`
	Code      string    `gorm:"column:code;not null" json:"-"`
	Email     string    `gorm:"column:email;not null;index:idx_otps_email_type_status" json:"email"`
	OTPTypeID int64     `gorm:"column:otp_type_id;not null;index:idx_otps_email_type_status" json:"otp_type_id"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	IsUsed    bool      `gorm:"column:is_used;not null;default:false" json:"is_used"`
	Audit
}

func (OTP) TableName() string { return "otps" }

// Expired reports whether the code is past its expiry at now.
func (o OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

type OTPType struct {
	ID   int64  `gorm:"column:otp_type_id;primaryKey;autoIncrement" json:"otp_type_id"`
	Name string `gorm:"column:name;not null" json:"name"`
	Audit
}

func (OTPType) TableName() string { return "otp_types" }
