package catalog

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"gorm.io/gorm"
)

// Services holds the generic CRUD service for every catalog table.
type Services struct {
	Roles             *resource.Service[models.Role]
	Countries         *resource.Service[models.Country]
	States            *resource.Service[models.State]
	Cities            *resource.Service[models.City]
	Categories        *resource.Service[models.Category]
	AppCategories     *resource.Service[models.AppCategory]
	Statuses          *StatusService
	Classes           *resource.Service[models.AstrologerClass]
	ClassJoins        *resource.Service[models.ClassJoinUser]
	ClassShares       *resource.Service[models.ClassShareUser]
	ClassViews        *resource.Service[models.ClassViewUser]
	Bookings          *resource.Service[models.BookingAstrologer]
	Streams           *resource.Service[models.Stream]
	Plans             *resource.Service[models.Plan]
	PlanSubscriptions *resource.Service[models.PlanSubscriptionByUser]
	Gifts             *resource.Service[models.Gift]
}

// New builds every catalog service on db.
func New(db *gorm.DB) (*Services, error) {
	if db == nil {
		return nil, stdErrors.New("catalog requires a database")
	}
	b := &builder{db: db}
	s := &Services{
		Roles:             build[models.Role](b, RoleDescriptor),
		Countries:         build[models.Country](b, CountryDescriptor),
		States:            build[models.State](b, StateDescriptor),
		Cities:            build[models.City](b, CityDescriptor),
		Categories:        build[models.Category](b, CategoryDescriptor),
		AppCategories:     build[models.AppCategory](b, AppCategoryDescriptor),
		Classes:           build[models.AstrologerClass](b, AstrologerClassDescriptor),
		ClassJoins:        build[models.ClassJoinUser](b, ClassJoinDescriptor),
		ClassShares:       build[models.ClassShareUser](b, ClassShareDescriptor),
		ClassViews:        build[models.ClassViewUser](b, ClassViewDescriptor),
		Bookings:          build[models.BookingAstrologer](b, BookingDescriptor),
		Streams:           build[models.Stream](b, StreamDescriptor),
		Plans:             build[models.Plan](b, PlanDescriptor),
		PlanSubscriptions: build[models.PlanSubscriptionByUser](b, PlanSubscriptionDescriptor),
		Gifts:             build[models.Gift](b, GiftDescriptor),
	}
	if b.err != nil {
		return nil, b.err
	}
	statuses, err := NewStatusService(db)
	if err != nil {
		return nil, err
	}
	s.Statuses = statuses
	return s, nil
}

// builder keeps the first construction error.
type builder struct {
	db  *gorm.DB
	err error
}

func build[T any](b *builder, desc resource.Descriptor) *resource.Service[T] {
	if b.err != nil {
		return nil
	}
	svc, err := resource.NewService[T](resource.NewRepository[T](b.db, desc), desc)
	if err != nil {
		b.err = fmt.Errorf("%s: %w", desc.Name, err)
		return nil
	}
	return svc
}

// StatesByCountry lists active states of one country.
func StatesByCountry(q resource.ListQuery, countryID int64) resource.ListQuery {
	return q.ActiveOnly().Where("country_id", countryID)
}

// CitiesByState lists active cities of one state.
func CitiesByState(q resource.ListQuery, stateID int64) resource.ListQuery {
	return q.ActiveOnly().Where("state_id", stateID)
}

// CitiesByCountry lists active cities of one country.
func CitiesByCountry(q resource.ListQuery, countryID int64) resource.ListQuery {
	return q.ActiveOnly().Where("country_id", countryID)
}

// ClassesByCategory lists classes of one category.
func ClassesByCategory(q resource.ListQuery, categoryID int64) resource.ListQuery {
	return q.Where("category_id", categoryID)
}

// BookingsByAstrologer lists bookings made with one astrologer.
func BookingsByAstrologer(q resource.ListQuery, astrologerID int64) resource.ListQuery {
	return q.Where("astrologer_id", astrologerID)
}

// StreamsBySessionStatus validates the raw path value and scopes the listing.
func StreamsBySessionStatus(q resource.ListQuery, raw string) (resource.ListQuery, error) {
	status, err := enums.ParseSessionStatus(raw)
	if err != nil {
		return q, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid session status")
	}
	return q.Where("session_status", string(status)), nil
}

// StatusService adds bulk updates to the status label CRUD.
type StatusService struct {
	*resource.Service[models.StatusLabel]
	repo *resource.Repository[models.StatusLabel]
	db   *gorm.DB
}

func NewStatusService(db *gorm.DB) (*StatusService, error) {
	repo := resource.NewRepository[models.StatusLabel](db, StatusDescriptor)
	generic, err := resource.NewService[models.StatusLabel](repo, StatusDescriptor)
	if err != nil {
		return nil, err
	}
	return &StatusService{Service: generic, repo: repo, db: db}, nil
}

// UpdateAll applies every patch in one transaction. A missing id rolls back the batch.
func (s *StatusService) UpdateAll(ctx context.Context, actor *int64, req UpdateAllStatusesRequest) ([]models.StatusLabel, error) {
	if len(req.Statuses) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Statuses must be a non-empty array")
	}
	updated := make([]models.StatusLabel, 0, len(req.Statuses))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, item := range req.Statuses {
			changes := item.Changes()
			changes["updated_by"] = actor
			affected, err := repo.Update(ctx, item.ID, changes)
			if err != nil {
				return err
			}
			if affected == 0 {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Status %d not found", item.ID))
			}
			row, err := repo.FindByID(ctx, item.ID)
			if err != nil {
				return err
			}
			updated = append(updated, *row)
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update statuses")
	}
	return updated, nil
}

// SubscriptionExpirer deactivates plan subscriptions past their expiry date.
type SubscriptionExpirer struct {
	db *gorm.DB
}

func NewSubscriptionExpirer(db *gorm.DB) *SubscriptionExpirer {
	return &SubscriptionExpirer{db: db}
}

// ExpireDue flips status to false on active subscriptions whose expiry_date is before now.
func (e *SubscriptionExpirer) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	res := e.db.WithContext(ctx).
		Model(&models.PlanSubscriptionByUser{}).
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date < ?", true, now.UTC()).
		Updates(map[string]any{
			"status":     false,
			"updated_at": now.UTC(),
		})
	return res.RowsAffected, res.Error
}
