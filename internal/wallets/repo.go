package wallets

import (
	"context"
	"time"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Descriptor configures generic listing and deletion of wallets.
var Descriptor = resource.Descriptor{
	Name:         "Wallet",
	IDColumn:     "wallet_id",
	Filters:      map[string]string{"user_id": "user_id"},
	SortColumns:  []string{"wallet_amount", "user_id"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "user_id",
}

// Repository persists wallets.
type Repository struct {
	*resource.Repository[models.Wallet]
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: resource.NewRepository[models.Wallet](db, Descriptor),
		db:         db,
	}
}

// Ensure inserts a zero wallet for userID unless one exists, then returns the stored row.
func (r *Repository) Ensure(ctx context.Context, userID int64, actor *int64) (*models.Wallet, error) {
	wallet := &models.Wallet{UserID: userID, Amount: decimal.Zero}
	wallet.StampCreated(actor)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(wallet).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUser(ctx, userID)
}

func (r *Repository) FindByUser(ctx context.Context, userID int64) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// UpdateByUser applies changes to the wallet owned by userID.
func (r *Repository) UpdateByUser(ctx context.Context, userID int64, changes map[string]any) (int64, error) {
	changes["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Updates(changes)
	return res.RowsAffected, res.Error
}
