package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/angelmondragon/astrosocial-backend/api/middleware"
	"github.com/angelmondragon/astrosocial-backend/api/responses"
	"github.com/angelmondragon/astrosocial-backend/api/validators"
	"github.com/angelmondragon/astrosocial-backend/internal/notifications"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

// Notifier is the notification write surface beyond generic CRUD.
type Notifier interface {
	CreateOne(ctx context.Context, actor *int64, req notifications.CreateRequest) (*models.Notification, error)
	FanoutByRole(ctx context.Context, actor *int64, req notifications.FanoutByRoleRequest) (*notifications.FanoutResult, error)
	FanoutAll(ctx context.Context, actor *int64, req notifications.FanoutAllRequest) (*notifications.FanoutResult, error)
	MarkRead(ctx context.Context, userID, notificationID int64) (*models.Notification, error)
}

func CreateNotification(svc Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body notifications.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.CreateOne(r.Context(), actorRef(middleware.UserIDFromContext(r.Context())), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Notification created successfully", row)
	}
}

func CreateNotificationsByRole(svc Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body notifications.FanoutByRoleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.FanoutByRole(r.Context(), actorRef(middleware.UserIDFromContext(r.Context())), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, fanoutMessage(result), result)
	}
}

func CreateNotificationsForAll(svc Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body notifications.FanoutAllRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.FanoutAll(r.Context(), actorRef(middleware.UserIDFromContext(r.Context())), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, fanoutMessage(result), result)
	}
}

// MarkNotificationRead flags one of the caller's notifications as read.
func MarkNotificationRead(svc Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.MarkRead(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Notification marked as read", row)
	}
}

func fanoutMessage(result *notifications.FanoutResult) string {
	return fmt.Sprintf("Notifications sent to %d users", result.Count)
}
