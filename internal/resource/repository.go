package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/astrosocial-backend/internal/repo"
	"github.com/angelmondragon/astrosocial-backend/pkg/pagination"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is a gorm-backed store for one table described by a Descriptor.
type Repository[T any] struct {
	base repo.Base
	desc Descriptor
}

func NewRepository[T any](db *gorm.DB, desc Descriptor) *Repository[T] {
	return &Repository[T]{base: repo.NewBase(db), desc: desc}
}

// WithTx binds the repository to an open transaction.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{base: r.base.WithTx(tx), desc: r.desc}
}

func (r *Repository[T]) Create(ctx context.Context, row *T) error {
	return r.base.DB(ctx).Create(row).Error
}

func (r *Repository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var row T
	err := r.base.DB(ctx).
		Where(fmt.Sprintf("%s = ?", r.desc.IDColumn), id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository[T]) List(ctx context.Context, q ListQuery) ([]T, int64, error) {
	q.Params = q.Params.Normalize()

	var (
		rows  []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.scoped(gctx, q).Count(&total).Error
	})
	g.Go(func() error {
		return r.scoped(gctx, q).
			Order(clause.OrderByColumn{
				Column: clause.Column{Name: r.desc.SortColumn(q.SortBy)},
				Desc:   q.SortOrder != pagination.SortAsc,
			}).
			Offset(q.Offset()).
			Limit(q.Limit).
			Find(&rows).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, total, nil
}

func (r *Repository[T]) scoped(ctx context.Context, q ListQuery) *gorm.DB {
	return r.base.DB(ctx).Model(new(T)).Scopes(
		repo.Status(q.Status),
		repo.Equals(q.Filters),
		repo.Search(q.Search, r.desc.SearchColumns...),
	)
}

// Update applies changes to the row and returns the number of rows matched.
func (r *Repository[T]) Update(ctx context.Context, id int64, changes map[string]any) (int64, error) {
	values := make(map[string]any, len(changes)+1)
	for k, v := range changes {
		values[k] = v
	}
	if _, ok := values["updated_at"]; !ok {
		values["updated_at"] = time.Now().UTC()
	}
	res := r.base.DB(ctx).
		Model(new(T)).
		Where(fmt.Sprintf("%s = ?", r.desc.IDColumn), id).
		Updates(values)
	return res.RowsAffected, res.Error
}

// SetStatus flips the soft-delete flag for ids.
func (r *Repository[T]) SetStatus(ctx context.Context, ids []int64, status bool, actor *int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.base.DB(ctx).
		Model(new(T)).
		Where(fmt.Sprintf("%s IN ?", r.desc.IDColumn), ids).
		Updates(map[string]any{
			"status":     status,
			"updated_by": actor,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.base.DB(ctx).
		Where(fmt.Sprintf("%s = ?", r.desc.IDColumn), id).
		Delete(new(T))
	return res.RowsAffected, res.Error
}
