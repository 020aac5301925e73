package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/astrosocial-backend/api/middleware"
	"github.com/angelmondragon/astrosocial-backend/api/responses"
	"github.com/angelmondragon/astrosocial-backend/api/validators"
	"github.com/angelmondragon/astrosocial-backend/internal/catalog"
	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

// Scopes for the path-filtered list routes.
var (
	StatesByCountry      = pathScope("countryId", catalog.StatesByCountry)
	CitiesByState        = pathScope("stateId", catalog.CitiesByState)
	CitiesByCountry      = pathScope("countryId", catalog.CitiesByCountry)
	ClassesByCategory    = pathScope("categoryId", catalog.ClassesByCategory)
	BookingsByAstrologer = pathScope("astrologerId", catalog.BookingsByAstrologer)
)

// StreamsBySessionStatus scopes stream listings to the {session_status} path value.
func StreamsBySessionStatus(r *http.Request, q resource.ListQuery) (resource.ListQuery, error) {
	return catalog.StreamsBySessionStatus(q, chi.URLParam(r, "session_status"))
}

// StatusBatchUpdater applies several status label patches at once.
type StatusBatchUpdater interface {
	UpdateAll(ctx context.Context, actor *int64, req catalog.UpdateAllStatusesRequest) ([]models.StatusLabel, error)
}

func UpdateAllStatuses(svc StatusBatchUpdater, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body catalog.UpdateAllStatusesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.UpdateAll(r.Context(), actorRef(middleware.UserIDFromContext(r.Context())), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Statuses updated successfully", rows)
	}
}

// NoCreate fills the create type parameter for resources whose rows are
// written by a dedicated endpoint or a service flow. Its create route is never mounted.
type NoCreate[T any] struct{}

func (NoCreate[T]) ToModel(int64) *T { return nil }

// NoPatch is the update counterpart of NoCreate.
type NoPatch struct{}

func (NoPatch) Changes() map[string]any { return nil }
