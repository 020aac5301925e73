package notifications

import (
	"context"
	"time"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Descriptor configures generic CRUD over notifications.
var Descriptor = resource.Descriptor{
	Name:          "Notification",
	IDColumn:      "notification_id",
	SearchColumns: []string{"notification_txt"},
	Filters: map[string]string{
		"notification_type_id": "notification_type_id",
		"user_id":              "user_id",
		"is_read":              "is_read",
	},
	SortColumns:  []string{"notification_type_id", "user_id", "is_read"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "user_id",
}

// TypeDescriptor configures CRUD over notification types.
var TypeDescriptor = resource.Descriptor{
	Name:          "Notification type",
	IDColumn:      "notification_type_id",
	SearchColumns: []string{"notification_type"},
	SortColumns:   []string{"notification_type"},
	DeletePolicy:  resource.SoftDelete,
}

// Repository exposes persistence helpers for notifications.
type Repository struct {
	*resource.Repository[models.Notification]
	db *gorm.DB
}

// NewRepository returns a notifications repository bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: resource.NewRepository[models.Notification](db, Descriptor),
		db:         db,
	}
}

// MarkRead flags a notification owned by userID as read. It reports whether the row exists.
func (r *Repository) MarkRead(ctx context.Context, userID, notificationID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]any{
			"is_read":    true,
			"updated_by": userID,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteReadBefore hard-deletes read notifications last touched before cutoff.
func (r *Repository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_read = ? AND updated_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
