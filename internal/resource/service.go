package resource

import (
	"context"
	stdErrors "errors"

	"github.com/angelmondragon/astrosocial-backend/pkg/db"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Store is the persistence surface the generic service needs.
type Store[T any] interface {
	Create(ctx context.Context, row *T) error
	FindByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, q ListQuery) ([]T, int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (int64, error)
	SetStatus(ctx context.Context, ids []int64, status bool, actor *int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Service implements the create/list/get/update/delete contract for one entity.
type Service[T any] struct {
	store Store[T]
	desc  Descriptor
}

func NewService[T any](store Store[T], desc Descriptor) (*Service[T], error) {
	if store == nil {
		return nil, stdErrors.New("resource store is required")
	}
	if desc.Name == "" || desc.IDColumn == "" {
		return nil, stdErrors.New("resource descriptor requires name and id column")
	}
	return &Service[T]{store: store, desc: desc}, nil
}

// Descriptor returns the descriptor the service was built with.
func (s *Service[T]) Descriptor() Descriptor {
	return s.desc
}

func (s *Service[T]) Create(ctx context.Context, actor *int64, row *T) (*T, error) {
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Request body is required")
	}
	if stamped, ok := any(row).(models.Stampable); ok {
		stamped.StampCreated(actor)
	}
	if err := s.store.Create(ctx, row); err != nil {
		return nil, s.writeError(err, "create")
	}
	return row, nil
}

func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	row, err := s.store.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, s.desc.NotFoundMessage())
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load "+s.desc.Name)
	}
	if s.desc.HideInactive {
		if active, ok := any(row).(interface{ IsActive() bool }); ok && !active.IsActive() {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, s.desc.NotFoundMessage())
		}
	}
	return row, nil
}

func (s *Service[T]) List(ctx context.Context, q ListQuery) (Page[T], error) {
	q.Params = q.Params.Normalize()
	rows, total, err := s.store.List(ctx, q)
	if err != nil {
		return Page[T]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list "+s.desc.Name)
	}
	return Page[T]{Items: rows, Meta: pagination.NewMeta(q.Params, total)}, nil
}

// ListByOwner lists rows whose owner column equals owner.
func (s *Service[T]) ListByOwner(ctx context.Context, owner int64, q ListQuery) (Page[T], error) {
	return s.List(ctx, q.Where(s.desc.ownerColumn(), owner))
}

// Update merges changes into the row and returns the reloaded row.
func (s *Service[T]) Update(ctx context.Context, actor *int64, id int64, changes map[string]any) (*T, error) {
	if changes == nil {
		changes = map[string]any{}
	}
	changes["updated_by"] = actor
	affected, err := s.store.Update(ctx, id, changes)
	if err != nil {
		return nil, s.writeError(err, "update")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, s.desc.NotFoundMessage())
	}
	row, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload "+s.desc.Name)
	}
	return row, nil
}

// Delete applies the descriptor's delete policy.
func (s *Service[T]) Delete(ctx context.Context, actor *int64, id int64) error {
	var (
		affected int64
		err      error
	)
	switch s.desc.DeletePolicy {
	case HardDelete:
		affected, err = s.store.Delete(ctx, id)
	default:
		affected, err = s.store.SetStatus(ctx, []int64{id}, false, actor)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete "+s.desc.Name)
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, s.desc.NotFoundMessage())
	}
	return nil
}

// SetStatus updates the status flag for every id and returns the count changed.
func (s *Service[T]) SetStatus(ctx context.Context, actor *int64, ids []int64, status bool) (int64, error) {
	if len(ids) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "At least one id is required")
	}
	affected, err := s.store.SetStatus(ctx, ids, status, actor)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update "+s.desc.Name+" status")
	}
	return affected, nil
}

func (s *Service[T]) writeError(err error, op string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, s.desc.Name+" already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op+" "+s.desc.Name)
}
