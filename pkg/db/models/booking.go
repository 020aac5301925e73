package models

import "github.com/angelmondragon/astrosocial-backend/pkg/enums"

// BookingAstrologer is a consultation request from a user to an astrologer.
type BookingAstrologer struct {
	ID            int64               `gorm:"column:booking_astrologer_id;primaryKey;autoIncrement" json:"booking_astrologer_id"`
	AstrologerID  int64               `gorm:"column:astrologer_id;not null;index" json:"astrologer_id"`
	UserID        int64               `gorm:"column:user_id;not null;index" json:"user_id"`
	CallStatus    *enums.CallStatus   `gorm:"column:call_status" json:"call_status"`
	BookingStatus enums.BookingStatus `gorm:"column:booking_status;not null;default:'Pending'" json:"booking_status"`
	Audit
}

func (BookingAstrologer) TableName() string { return "booking_astrologers" }
