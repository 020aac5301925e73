package catalog

import (
	"strings"
	"time"

	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

type CreateStreamRequest struct {
	Title                    string                  `json:"title" validate:"required,min=2,max=200"`
	Datetime                 time.Time               `json:"datetime" validate:"required"`
	StreamType               string                  `json:"stream_type" validate:"required,max=50"`
	LanguageID               int64                   `json:"language_id" validate:"required,gt=0"`
	CategoryTopicTag         *string                 `json:"category_topic_tag,omitempty" validate:"omitempty,max=200"`
	EntryFee                 decimal.Decimal         `json:"entry_fee" validate:"gte=0"`
	Visibility               *enums.StreamVisibility `json:"visibility,omitempty" validate:"omitempty,enum"`
	DescriptionSessionAgenda *string                 `json:"description_session_agenda,omitempty" validate:"omitempty,max=5000"`
	ThumbnailBannerImage     *string                 `json:"thumbnail_banner_image,omitempty" validate:"omitempty,max=2048"`
	SessionStatus            *enums.SessionStatus    `json:"session_status,omitempty" validate:"omitempty,enum"`
}

// ToModel hosts the stream under the caller.
func (r CreateStreamRequest) ToModel(actor int64) *models.Stream {
	stream := &models.Stream{
		Title:                    strings.TrimSpace(r.Title),
		Datetime:                 r.Datetime.UTC(),
		StreamType:               strings.TrimSpace(r.StreamType),
		LanguageID:               r.LanguageID,
		CategoryTopicTag:         trimmed(r.CategoryTopicTag),
		EntryFee:                 r.EntryFee,
		Visibility:               enums.StreamVisibilityPublic,
		DescriptionSessionAgenda: trimmed(r.DescriptionSessionAgenda),
		ThumbnailBannerImage:     trimmed(r.ThumbnailBannerImage),
		HostUserID:               actor,
		SessionStatus:            enums.SessionStatusScheduled,
	}
	if r.Visibility != nil {
		stream.Visibility = *r.Visibility
	}
	if r.SessionStatus != nil {
		stream.SessionStatus = *r.SessionStatus
	}
	return stream
}

type UpdateStreamRequest struct {
	Title                    *string                 `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Datetime                 *time.Time              `json:"datetime,omitempty"`
	StreamType               *string                 `json:"stream_type,omitempty" validate:"omitempty,max=50"`
	LanguageID               *int64                  `json:"language_id,omitempty" validate:"omitempty,gt=0"`
	CategoryTopicTag         *string                 `json:"category_topic_tag,omitempty" validate:"omitempty,max=200"`
	EntryFee                 *decimal.Decimal        `json:"entry_fee,omitempty" validate:"omitempty,gte=0"`
	Visibility               *enums.StreamVisibility `json:"visibility,omitempty" validate:"omitempty,enum"`
	DescriptionSessionAgenda *string                 `json:"description_session_agenda,omitempty" validate:"omitempty,max=5000"`
	ThumbnailBannerImage     *string                 `json:"thumbnail_banner_image,omitempty" validate:"omitempty,max=2048"`
	SessionStatus            *enums.SessionStatus    `json:"session_status,omitempty" validate:"omitempty,enum"`
	Status                   *bool                   `json:"status,omitempty"`
}

func (r UpdateStreamRequest) Changes() map[string]any {
	p := patch{}.
		str("title", r.Title).
		at("datetime", r.Datetime).
		str("stream_type", r.StreamType).
		i64("language_id", r.LanguageID).
		str("category_topic_tag", r.CategoryTopicTag).
		dec("entry_fee", r.EntryFee).
		str("description_session_agenda", r.DescriptionSessionAgenda).
		str("thumbnail_banner_image", r.ThumbnailBannerImage).
		flag("status", r.Status)
	p = val(p, "visibility", r.Visibility)
	return val(p, "session_status", r.SessionStatus)
}
