package models

import (
	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// AstrologerClass is a piece of teaching content published by an astrologer.
type AstrologerClass struct {
	ID             int64             `gorm:"column:astrologer_class_id;primaryKey;autoIncrement" json:"astrologer_class_id"`
	AstrologerID   int64             `gorm:"column:astrologer_id;not null;index" json:"astrologer_id"`
	Title          string            `gorm:"column:title;not null" json:"title"`
	ClassType      enums.ClassType   `gorm:"column:class_type;not null" json:"class_type"`
	Access         enums.ClassAccess `gorm:"column:access;not null;default:'Free'" json:"access"`
	CategoryID     int64             `gorm:"column:category_id;not null;index" json:"category_id"`
	Duration       *string           `gorm:"column:duration" json:"duration"`
	UploadImage    *string           `gorm:"column:upload_image" json:"upload_image"`
	Description    *string           `gorm:"column:description;type:text" json:"description"`
	Pricing        decimal.Decimal   `gorm:"column:pricing;type:numeric(12,2);not null;default:0" json:"pricing"`
	TargetAudience *string           `gorm:"column:target_audience" json:"target_audience"`
	Audit
}

func (AstrologerClass) TableName() string { return "astrologer_classes" }

// ClassJoinUser records a user joining a class. The joining user is created_by.
type ClassJoinUser struct {
	ID      int64 `gorm:"column:class_join_user_id;primaryKey;autoIncrement" json:"class_join_user_id"`
	ClassID int64 `gorm:"column:class_id;not null;index" json:"class_id"`
	Audit
}

func (ClassJoinUser) TableName() string { return "class_join_users" }

type ClassShareUser struct {
	ID      int64 `gorm:"column:class_share_user_id;primaryKey;autoIncrement" json:"class_share_user_id"`
	ClassID int64 `gorm:"column:class_id;not null;index" json:"class_id"`
	Audit
}

func (ClassShareUser) TableName() string { return "class_share_users" }

type ClassViewUser struct {
	ID      int64 `gorm:"column:class_view_user_id;primaryKey;autoIncrement" json:"class_view_user_id"`
	ClassID int64 `gorm:"column:class_id;not null;index" json:"class_id"`
	Audit
}

func (ClassViewUser) TableName() string { return "class_view_users" }
