package users

import (
	"context"
	"time"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Descriptor configures listing and deletion for the users table.
var Descriptor = resource.Descriptor{
	Name:          "User",
	IDColumn:      "user_id",
	SearchColumns: []string{"full_name", "email", "mobile", "specialty"},
	Filters: map[string]string{
		"role_id":    "role_id",
		"country_id": "country_id",
		"state_id":   "state_id",
		"city_id":    "city_id",
		"gender":     "gender",
	},
	SortColumns:  []string{"full_name", "email", "gender", "online_status", "experience"},
	DefaultSort:  "created_at",
	DeletePolicy: resource.SoftDelete,
}

// Repository exposes user-related persistence operations.
type Repository struct {
	*resource.Repository[models.User]
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: resource.NewRepository[models.User](db, Descriptor),
		db:         db,
	}
}

// FindByEmail retrieves the user matching the provided (already normalized) email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListActiveIDs returns ids of active users, optionally restricted to a role.
func (r *Repository) ListActiveIDs(ctx context.Context, roleID *int64) ([]int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("status = ?", true)
	if roleID != nil {
		query = query.Where("role_id = ?", *roleID)
	}
	var ids []int64
	if err := query.Order("user_id ASC").Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateLastLogin refreshes the user's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// UpdatePasswordHash replaces the stored hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id int64, hash string, actor *int64) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", id).
		Updates(map[string]any{
			"password_hash": hash,
			"updated_by":    actor,
			"updated_at":    time.Now().UTC(),
		}).Error
}
