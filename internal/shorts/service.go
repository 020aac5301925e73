package shorts

import (
	"context"
	stdErrors "errors"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"gorm.io/gorm"
)

type engagementStore[T any] interface {
	resource.Store[T]
	Engage(ctx context.Context, row *T, actor *int64) (bool, error)
	Withdraw(ctx context.Context, userID, shortsID int64, actor *int64) (bool, error)
	FindPair(ctx context.Context, userID, shortsID int64) (*T, error)
}

// EngagementService adds engage/withdraw on top of generic CRUD for one engagement table.
type EngagementService[T any] struct {
	*resource.Service[T]
	repo engagementStore[T]
	kind Kind[T]
	logg *logger.Logger
}

func NewEngagementService[T any](repo engagementStore[T], kind Kind[T], logg *logger.Logger) (*EngagementService[T], error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "engagement repository required")
	}
	if kind.New == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "engagement constructor required")
	}
	generic, err := resource.NewService[T](repo, kind.Descriptor)
	if err != nil {
		return nil, err
	}
	return &EngagementService[T]{Service: generic, repo: repo, kind: kind, logg: logg}, nil
}

// Engage records userID's engagement with shortsID, reviving a withdrawn row.
func (s *EngagementService[T]) Engage(ctx context.Context, userID, shortsID int64) (*T, error) {
	row := s.kind.New(userID, shortsID)
	if stamped, ok := any(row).(models.Stampable); ok {
		stamped.StampCreated(&userID)
	}
	created, err := s.repo.Engage(ctx, row, &userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record "+s.kind.Descriptor.Name)
	}
	if !created {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, s.kind.Duplicate)
	}
	stored, err := s.repo.FindPair(ctx, userID, shortsID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload "+s.kind.Descriptor.Name)
	}
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"user_id":   userID,
			"shorts_id": shortsID,
			"table":     s.kind.Table,
		})
		s.logg.Info(ctx, "shorts.engagement_recorded")
	}
	return stored, nil
}

// Withdraw soft-deletes userID's active engagement with shortsID.
func (s *EngagementService[T]) Withdraw(ctx context.Context, userID, shortsID int64) (*T, error) {
	ok, err := s.repo.Withdraw(ctx, userID, shortsID, &userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "withdraw "+s.kind.Descriptor.Name)
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, s.kind.Missing)
	}
	row, err := s.repo.FindPair(ctx, userID, shortsID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, s.kind.Descriptor.NotFoundMessage())
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload "+s.kind.Descriptor.Name)
	}
	return row, nil
}

// ListByShorts lists active engagements on one short unless a status is requested.
func (s *EngagementService[T]) ListByShorts(ctx context.Context, shortsID int64, q resource.ListQuery) (resource.Page[T], error) {
	if q.Status == nil {
		q = q.ActiveOnly()
	}
	return s.List(ctx, ByShorts(q, shortsID))
}

// ByShorts scopes a listing to one short.
func ByShorts(q resource.ListQuery, shortsID int64) resource.ListQuery {
	return q.Where("shorts_id", shortsID)
}
