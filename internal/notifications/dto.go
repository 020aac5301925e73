package notifications

import "github.com/angelmondragon/astrosocial-backend/pkg/db/models"

// CreateRequest addresses one notification to one user.
type CreateRequest struct {
	NotificationTypeID int64  `json:"notification_type_id" validate:"required,gt=0"`
	Text               string `json:"notification_txt" validate:"required,max=500"`
	UserID             int64  `json:"user_id" validate:"required,gt=0"`
	IsRead             *bool  `json:"is_read,omitempty"`
	Status             *bool  `json:"status,omitempty"`
}

// FanoutByRoleRequest targets every active user holding role_id.
type FanoutByRoleRequest struct {
	RoleID             int64  `json:"role_id" validate:"required,gt=0"`
	NotificationTypeID int64  `json:"notification_type_id" validate:"required,gt=0"`
	Text               string `json:"notification_txt" validate:"required,max=500"`
}

// FanoutAllRequest targets every active user.
type FanoutAllRequest struct {
	NotificationTypeID int64  `json:"notification_type_id" validate:"required,gt=0"`
	Text               string `json:"notification_txt" validate:"required,max=500"`
}

// UpdateRequest patches a notification.
type UpdateRequest struct {
	NotificationTypeID *int64  `json:"notification_type_id,omitempty" validate:"omitempty,gt=0"`
	Text               *string `json:"notification_txt,omitempty" validate:"omitempty,max=500"`
	UserID             *int64  `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	IsRead             *bool   `json:"is_read,omitempty"`
	Status             *bool   `json:"status,omitempty"`
}

// Changes maps the populated fields to columns.
func (r UpdateRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.NotificationTypeID != nil {
		changes["notification_type_id"] = *r.NotificationTypeID
	}
	if r.Text != nil {
		changes["notification_txt"] = *r.Text
	}
	if r.UserID != nil {
		changes["user_id"] = *r.UserID
	}
	if r.IsRead != nil {
		changes["is_read"] = *r.IsRead
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	return changes
}

// FanoutResult reports the rows written by a fanout.
type FanoutResult struct {
	Count         int                   `json:"count"`
	Notifications []models.Notification `json:"notifications"`
}
