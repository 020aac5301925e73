package shorts

import (
	"context"
	"time"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ShortsDescriptor = resource.Descriptor{
	Name:          "Short",
	IDColumn:      "my_shorts_id",
	SearchColumns: []string{"title"},
	SortColumns:   []string{"title"},
	DeletePolicy:  resource.SoftDelete,
}

var CommentDescriptor = resource.Descriptor{
	Name:          "Comment",
	IDColumn:      "comment_shorts_id",
	SearchColumns: []string{"comment"},
	Filters: map[string]string{
		"user_id":   "user_id",
		"shorts_id": "shorts_id",
	},
	SortColumns:  []string{"user_id", "shorts_id"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "user_id",
}

var engagementFilters = map[string]string{
	"user_id":   "user_id",
	"shorts_id": "shorts_id",
}

var LikeDescriptor = resource.Descriptor{
	Name:         "Like",
	IDColumn:     "like_shorts_id",
	Filters:      engagementFilters,
	SortColumns:  []string{"user_id", "shorts_id"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "user_id",
}

var ShareDescriptor = resource.Descriptor{
	Name:         "Share",
	IDColumn:     "share_shorts_id",
	Filters:      engagementFilters,
	SortColumns:  []string{"user_id", "shorts_id"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "user_id",
}

var TagDescriptor = resource.Descriptor{
	Name:         "Tag",
	IDColumn:     "tag_shorts_id",
	Filters:      engagementFilters,
	SortColumns:  []string{"user_id", "shorts_id"},
	DeletePolicy: resource.SoftDelete,
	OwnerColumn:  "user_id",
}

// Kind describes one (user, short) engagement table.
type Kind[T any] struct {
	Descriptor resource.Descriptor
	Table      string
	New        func(userID, shortsID int64) *T
	// Duplicate is returned when the caller already holds an active row.
	Duplicate string
	// Missing is returned when there is no active row to withdraw.
	Missing string
}

var Likes = Kind[models.LikeShorts]{
	Descriptor: LikeDescriptor,
	Table:      models.LikeShorts{}.TableName(),
	New: func(userID, shortsID int64) *models.LikeShorts {
		return &models.LikeShorts{UserID: userID, ShortsID: shortsID}
	},
	Duplicate: "You have already liked this short",
	Missing:   "You have not liked this short",
}

var Shares = Kind[models.ShareShorts]{
	Descriptor: ShareDescriptor,
	Table:      models.ShareShorts{}.TableName(),
	New: func(userID, shortsID int64) *models.ShareShorts {
		return &models.ShareShorts{UserID: userID, ShortsID: shortsID}
	},
	Duplicate: "You have already shared this short",
	Missing:   "You have not shared this short",
}

var Tags = Kind[models.TagShorts]{
	Descriptor: TagDescriptor,
	Table:      models.TagShorts{}.TableName(),
	New: func(userID, shortsID int64) *models.TagShorts {
		return &models.TagShorts{UserID: userID, ShortsID: shortsID}
	},
	Duplicate: "You have already tagged this short",
	Missing:   "You have not tagged this short",
}

// EngagementRepository persists one engagement table.
type EngagementRepository[T any] struct {
	*resource.Repository[T]
	db    *gorm.DB
	table string
}

func NewEngagementRepository[T any](db *gorm.DB, kind Kind[T]) *EngagementRepository[T] {
	return &EngagementRepository[T]{
		Repository: resource.NewRepository[T](db, kind.Descriptor),
		db:         db,
		table:      kind.Table,
	}
}

// Engage inserts the pair or reactivates its soft-deleted row in one statement.
// It reports false when the pair is already active.
func (r *EngagementRepository[T]) Engage(ctx context.Context, row *T, actor *int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "shorts_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":     true,
				"updated_by": actor,
				"updated_at": time.Now().UTC(),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Table: r.table, Name: "status"}, Value: false},
			}},
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Withdraw soft-deletes the active pair. It reports false when none was active.
func (r *EngagementRepository[T]) Withdraw(ctx context.Context, userID, shortsID int64, actor *int64) (bool, error) {
	var model T
	res := r.db.WithContext(ctx).
		Model(&model).
		Where("user_id = ? AND shorts_id = ? AND status = ?", userID, shortsID, true).
		Updates(map[string]any{
			"status":     false,
			"updated_by": actor,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *EngagementRepository[T]) FindPair(ctx context.Context, userID, shortsID int64) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND shorts_id = ?", userID, shortsID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
