package otp

import (
	"context"
	"time"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Descriptor configures admin CRUD over issued codes. Rows are hard-deleted;
// getAll hides superseded codes unless status is passed.
var Descriptor = resource.Descriptor{
	Name:          "OTP",
	IDColumn:      "otp_id",
	SearchColumns: []string{"email"},
	Filters: map[string]string{
		"email":       "email",
		"otp_type_id": "otp_type_id",
		"is_used":     "is_used",
	},
	SortColumns:   []string{"email", "expires_at"},
	DeletePolicy:  resource.HardDelete,
	DefaultActive: true,
}

// TypeDescriptor configures CRUD over otp_types.
var TypeDescriptor = resource.Descriptor{
	Name:          "OTP type",
	IDColumn:      "otp_type_id",
	SearchColumns: []string{"name"},
	SortColumns:   []string{"name"},
	DeletePolicy:  resource.SoftDelete,
	DefaultActive: true,
}

// Repository persists one-time codes.
type Repository struct {
	*resource.Repository[models.OTP]
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: resource.NewRepository[models.OTP](db, Descriptor),
		db:         db,
	}
}

// Issue deactivates every active code for (email, type), used or not, and stores row in one transaction.
func (r *Repository) Issue(ctx context.Context, row *models.OTP) (superseded int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.OTP{}).
			Where("email = ? AND otp_type_id = ? AND status = ?", row.Email, row.OTPTypeID, true).
			Updates(map[string]any{"status": false, "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return res.Error
		}
		superseded = res.RowsAffected
		return tx.Create(row).Error
	})
	return superseded, err
}

// FindLatestActive returns the most recent live row matching the code.
func (r *Repository) FindLatestActive(ctx context.Context, email, code string, typeID int64) (*models.OTP, error) {
	var row models.OTP
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND otp_type_id = ? AND status = ?", email, code, typeID, true).
		Order("created_at DESC").
		Order("otp_id DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.OTP{}).
		Where("otp_id = ?", id).
		Updates(map[string]any{"status": false, "updated_at": time.Now().UTC()}).Error
}

// Consume marks the code used. It reports false when another caller consumed it first.
func (r *Repository) Consume(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.OTP{}).
		Where("otp_id = ? AND is_used = ? AND status = ?", id, false, true).
		Updates(map[string]any{"is_used": true, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeactivateExpired flips status on live codes whose expiry has passed.
func (r *Repository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.OTP{}).
		Where("status = ? AND is_used = ? AND expires_at < ?", true, false, now).
		Updates(map[string]any{"status": false, "updated_at": now})
	return res.RowsAffected, res.Error
}
