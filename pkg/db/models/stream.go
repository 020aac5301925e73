package models

import (
	"time"

	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Stream is a scheduled or live broadcast hosted by a user.
type Stream struct {
	ID                       int64                  `gorm:"column:stream_id;primaryKey;autoIncrement" json:"stream_id"`
	Title                    string                 `gorm:"column:title;not null" json:"title"`
	Datetime                 time.Time              `gorm:"column:datetime;not null" json:"datetime"`
	StreamType               string                 `gorm:"column:stream_type;not null" json:"stream_type"`
	LanguageID               int64                  `gorm:"column:language_id;not null" json:"language_id"`
	CategoryTopicTag         *string                `gorm:"column:category_topic_tag" json:"category_topic_tag"`
	EntryFee                 decimal.Decimal        `gorm:"column:entry_fee;type:numeric(12,2);not null;default:0" json:"entry_fee"`
	Visibility               enums.StreamVisibility `gorm:"column:visibility;not null;default:'public'" json:"visibility"`
	DescriptionSessionAgenda *string                `gorm:"column:description_session_agenda;type:text" json:"description_session_agenda"`
	ThumbnailBannerImage     *string                `gorm:"column:thumbnail_banner_image" json:"thumbnail_banner_image"`
	HostUserID               int64                  `gorm:"column:byuser_stream_id;not null;index" json:"byuser_stream_id"`
	SessionStatus            enums.SessionStatus    `gorm:"column:session_status;not null;default:'scheduled';index" json:"session_status"`
	Audit
}

func (Stream) TableName() string { return "streams" }
