package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/metrics"
	"go.uber.org/multierr"
)

const (
	scopeSingle = "single"
	scopeRole   = "role"
	scopeAll    = "all"
)

type notificationStore interface {
	resource.Store[models.Notification]
	MarkRead(ctx context.Context, userID, notificationID int64) (bool, error)
}

type recipientSource interface {
	ListActiveIDs(ctx context.Context, roleID *int64) ([]int64, error)
}

// ServiceParams bundles the dependencies required to build a notifications service.
type ServiceParams struct {
	Repo       notificationStore
	Recipients recipientSource
	Metrics    *metrics.FanoutMetrics
	Logger     *logger.Logger
}

// Service writes single and fanout notifications on top of the generic CRUD operations.
type Service struct {
	*resource.Service[models.Notification]
	repo       notificationStore
	recipients recipientSource
	metrics    *metrics.FanoutMetrics
	logg       *logger.Logger
}

// NewService wires notifications dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if params.Recipients == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "recipient source required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	generic, err := resource.NewService[models.Notification](params.Repo, Descriptor)
	if err != nil {
		return nil, err
	}
	return &Service{
		Service:    generic,
		repo:       params.Repo,
		recipients: params.Recipients,
		metrics:    params.Metrics,
		logg:       params.Logger,
	}, nil
}

// CreateOne writes a notification for a single user.
func (s *Service) CreateOne(ctx context.Context, actor *int64, req CreateRequest) (*models.Notification, error) {
	row := &models.Notification{
		NotificationTypeID: req.NotificationTypeID,
		Text:               strings.TrimSpace(req.Text),
		UserID:             req.UserID,
	}
	if req.IsRead != nil {
		row.IsRead = *req.IsRead
	}
	created, err := s.Service.Create(ctx, actor, row)
	if err != nil {
		s.metrics.Add(scopeSingle, "failed", 1)
		return nil, err
	}
	if req.Status != nil && !*req.Status {
		if _, err := s.repo.SetStatus(ctx, []int64{created.ID}, false, actor); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set notification status")
		}
		created.Status = false
	}
	s.metrics.Add(scopeSingle, "created", 1)
	return created, nil
}

// FanoutByRole writes one notification per active user holding the role.
func (s *Service) FanoutByRole(ctx context.Context, actor *int64, req FanoutByRoleRequest) (*FanoutResult, error) {
	roleID := req.RoleID
	ids, err := s.recipients.ListActiveIDs(ctx, &roleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recipients")
	}
	if len(ids) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No users found with the specified role")
	}
	ctx = s.logg.WithField(ctx, "role_id", roleID)
	return s.fanout(ctx, scopeRole, actor, ids, req.NotificationTypeID, req.Text)
}

// FanoutAll writes one notification per active user.
func (s *Service) FanoutAll(ctx context.Context, actor *int64, req FanoutAllRequest) (*FanoutResult, error) {
	ids, err := s.recipients.ListActiveIDs(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recipients")
	}
	if len(ids) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No active users found")
	}
	return s.fanout(ctx, scopeAll, actor, ids, req.NotificationTypeID, req.Text)
}

// fanout inserts rows one by one; a failed insert is recorded and the loop continues.
func (s *Service) fanout(ctx context.Context, scope string, actor *int64, userIDs []int64, typeID int64, text string) (*FanoutResult, error) {
	text = strings.TrimSpace(text)
	created := make([]models.Notification, 0, len(userIDs))
	var errs error
	for _, userID := range userIDs {
		row := &models.Notification{
			NotificationTypeID: typeID,
			Text:               text,
			UserID:             userID,
		}
		row.StampCreated(actor)
		if err := s.repo.Create(ctx, row); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("user %d: %w", userID, err))
			continue
		}
		created = append(created, *row)
	}

	failed := len(userIDs) - len(created)
	s.metrics.Add(scope, "created", len(created))
	s.metrics.Add(scope, "failed", failed)

	ctx = s.logg.WithFields(ctx, map[string]any{
		"scope":      scope,
		"recipients": len(userIDs),
		"created":    len(created),
		"failed":     failed,
	})
	if errs != nil {
		s.logg.Error(ctx, "notifications.fanout_partial_failure", errs)
	}
	if len(created) == 0 {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, errs, "notification fanout failed")
	}
	s.logg.Info(ctx, "notifications.fanout_complete")
	return &FanoutResult{Count: len(created), Notifications: created}, nil
}

// MarkRead flags one of the caller's notifications as read.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) (*models.Notification, error) {
	found, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, Descriptor.NotFoundMessage())
	}
	return s.Get(ctx, notificationID)
}
