package shorts

import (
	"strings"

	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
)

type CreateShortRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=200"`
	ImageVideo string `json:"image_video" validate:"required,max=2048"`
}

func (r CreateShortRequest) ToModel(_ int64) *models.MyShorts {
	return &models.MyShorts{
		Title:      strings.TrimSpace(r.Title),
		ImageVideo: strings.TrimSpace(r.ImageVideo),
	}
}

type UpdateShortRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	ImageVideo *string `json:"image_video,omitempty" validate:"omitempty,max=2048"`
	Status     *bool   `json:"status,omitempty"`
}

func (r UpdateShortRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = strings.TrimSpace(*r.Title)
	}
	if r.ImageVideo != nil {
		changes["image_video"] = strings.TrimSpace(*r.ImageVideo)
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	return changes
}

// EngageRequest names the short being liked, shared, tagged or unliked.
type EngageRequest struct {
	ShortsID int64 `json:"shorts_id" validate:"required,gt=0"`
}

type UpdateEngagementRequest struct {
	ShortsID *int64 `json:"shorts_id,omitempty" validate:"omitempty,gt=0"`
	Status   *bool  `json:"status,omitempty"`
}

func (r UpdateEngagementRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.ShortsID != nil {
		changes["shorts_id"] = *r.ShortsID
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	return changes
}

type CreateCommentRequest struct {
	ShortsID int64  `json:"shorts_id" validate:"required,gt=0"`
	Comment  string `json:"comment" validate:"required,min=1,max=1000"`
}

// ToModel builds a comment authored by userID.
func (r CreateCommentRequest) ToModel(userID int64) *models.CommentShorts {
	return &models.CommentShorts{
		UserID:   userID,
		ShortsID: r.ShortsID,
		Comment:  strings.TrimSpace(r.Comment),
	}
}

type UpdateCommentRequest struct {
	Comment *string `json:"comment,omitempty" validate:"omitempty,min=1,max=1000"`
	Status  *bool   `json:"status,omitempty"`
}

func (r UpdateCommentRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Comment != nil {
		changes["comment"] = strings.TrimSpace(*r.Comment)
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	return changes
}
