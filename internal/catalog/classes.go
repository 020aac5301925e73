package catalog

import (
	"strings"

	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

type CreateAstrologerClassRequest struct {
	AstrologerID   int64             `json:"astrologer_id" validate:"required,gt=0"`
	Title          string            `json:"title" validate:"required,min=2,max=200"`
	ClassType      enums.ClassType   `json:"class_type" validate:"required,enum"`
	Access         enums.ClassAccess `json:"access" validate:"omitempty,enum"`
	CategoryID     int64             `json:"category_id" validate:"required,gt=0"`
	Duration       *string           `json:"duration,omitempty" validate:"omitempty,max=50"`
	UploadImage    *string           `json:"upload_image,omitempty" validate:"omitempty,max=2048"`
	Description    *string           `json:"description,omitempty" validate:"omitempty,max=5000"`
	Pricing        decimal.Decimal   `json:"pricing" validate:"gte=0"`
	TargetAudience *string           `json:"target_audience,omitempty" validate:"omitempty,max=200"`
}

func (r CreateAstrologerClassRequest) ToModel(_ int64) *models.AstrologerClass {
	access := r.Access
	if access == "" {
		access = enums.ClassAccessFree
	}
	return &models.AstrologerClass{
		AstrologerID:   r.AstrologerID,
		Title:          strings.TrimSpace(r.Title),
		ClassType:      r.ClassType,
		Access:         access,
		CategoryID:     r.CategoryID,
		Duration:       trimmed(r.Duration),
		UploadImage:    trimmed(r.UploadImage),
		Description:    trimmed(r.Description),
		Pricing:        r.Pricing,
		TargetAudience: trimmed(r.TargetAudience),
	}
}

type UpdateAstrologerClassRequest struct {
	AstrologerID   *int64             `json:"astrologer_id,omitempty" validate:"omitempty,gt=0"`
	Title          *string            `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	ClassType      *enums.ClassType   `json:"class_type,omitempty" validate:"omitempty,enum"`
	Access         *enums.ClassAccess `json:"access,omitempty" validate:"omitempty,enum"`
	CategoryID     *int64             `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	Duration       *string            `json:"duration,omitempty" validate:"omitempty,max=50"`
	UploadImage    *string            `json:"upload_image,omitempty" validate:"omitempty,max=2048"`
	Description    *string            `json:"description,omitempty" validate:"omitempty,max=5000"`
	Pricing        *decimal.Decimal   `json:"pricing,omitempty" validate:"omitempty,gte=0"`
	TargetAudience *string            `json:"target_audience,omitempty" validate:"omitempty,max=200"`
	Status         *bool              `json:"status,omitempty"`
}

func (r UpdateAstrologerClassRequest) Changes() map[string]any {
	p := patch{}.
		i64("astrologer_id", r.AstrologerID).
		str("title", r.Title).
		i64("category_id", r.CategoryID).
		str("duration", r.Duration).
		str("upload_image", r.UploadImage).
		str("description", r.Description).
		dec("pricing", r.Pricing).
		str("target_audience", r.TargetAudience).
		flag("status", r.Status)
	p = val(p, "class_type", r.ClassType)
	return val(p, "access", r.Access)
}

// ClassActivityRequest records the caller joining, sharing or viewing a class.
type ClassActivityRequest struct {
	ClassID int64 `json:"class_id" validate:"required,gt=0"`
}

type UpdateClassActivityRequest struct {
	ClassID *int64 `json:"class_id,omitempty" validate:"omitempty,gt=0"`
	Status  *bool  `json:"status,omitempty"`
}

func (r UpdateClassActivityRequest) Changes() map[string]any {
	return patch{}.i64("class_id", r.ClassID).flag("status", r.Status)
}

// The acting user is recorded as created_by by the generic create.

type CreateClassJoinRequest struct{ ClassActivityRequest }

func (r CreateClassJoinRequest) ToModel(_ int64) *models.ClassJoinUser {
	return &models.ClassJoinUser{ClassID: r.ClassID}
}

type CreateClassShareRequest struct{ ClassActivityRequest }

func (r CreateClassShareRequest) ToModel(_ int64) *models.ClassShareUser {
	return &models.ClassShareUser{ClassID: r.ClassID}
}

type CreateClassViewRequest struct{ ClassActivityRequest }

func (r CreateClassViewRequest) ToModel(_ int64) *models.ClassViewUser {
	return &models.ClassViewUser{ClassID: r.ClassID}
}

type CreateBookingRequest struct {
	AstrologerID  int64                `json:"astrologer_id" validate:"required,gt=0"`
	UserID        int64                `json:"user_id" validate:"omitempty,gt=0"`
	CallStatus    *enums.CallStatus    `json:"call_status,omitempty" validate:"omitempty,enum"`
	BookingStatus *enums.BookingStatus `json:"booking_status,omitempty" validate:"omitempty,enum"`
}

// ToModel books for the caller unless user_id names someone else.
func (r CreateBookingRequest) ToModel(actor int64) *models.BookingAstrologer {
	booking := &models.BookingAstrologer{
		AstrologerID:  r.AstrologerID,
		UserID:        r.UserID,
		CallStatus:    r.CallStatus,
		BookingStatus: enums.BookingStatusPending,
	}
	if booking.UserID == 0 {
		booking.UserID = actor
	}
	if r.BookingStatus != nil {
		booking.BookingStatus = *r.BookingStatus
	}
	return booking
}

type UpdateBookingRequest struct {
	AstrologerID  *int64               `json:"astrologer_id,omitempty" validate:"omitempty,gt=0"`
	UserID        *int64               `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	CallStatus    *enums.CallStatus    `json:"call_status,omitempty" validate:"omitempty,enum"`
	BookingStatus *enums.BookingStatus `json:"booking_status,omitempty" validate:"omitempty,enum"`
	Status        *bool                `json:"status,omitempty"`
}

func (r UpdateBookingRequest) Changes() map[string]any {
	p := patch{}.
		i64("astrologer_id", r.AstrologerID).
		i64("user_id", r.UserID).
		flag("status", r.Status)
	p = val(p, "call_status", r.CallStatus)
	return val(p, "booking_status", r.BookingStatus)
}
