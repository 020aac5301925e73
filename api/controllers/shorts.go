package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/astrosocial-backend/api/responses"
	"github.com/angelmondragon/astrosocial-backend/api/validators"
	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/internal/shorts"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

// CommentsByShorts scopes comment listings to the {shorts_id} path value.
var CommentsByShorts = pathScope("shorts_id", shorts.ByShorts)

// Engager records and withdraws one kind of (user, short) engagement.
type Engager[T any] interface {
	Descriptor() resource.Descriptor
	Engage(ctx context.Context, userID, shortsID int64) (*T, error)
	Withdraw(ctx context.Context, userID, shortsID int64) (*T, error)
	ListByShorts(ctx context.Context, shortsID int64, q resource.ListQuery) (resource.Page[T], error)
}

// Engagement serves the like/share/tag specific routes.
type Engagement[T any] struct {
	svc  Engager[T]
	logg *logger.Logger
	name string
}

func NewEngagement[T any](svc Engager[T], logg *logger.Logger) *Engagement[T] {
	return &Engagement[T]{svc: svc, logg: logg, name: svc.Descriptor().Name}
}

// Engage replaces the generic create: the caller is always the engaging user.
func (h *Engagement[T]) Engage(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	var body shorts.EngageRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	row, err := h.svc.Engage(r.Context(), userID, body.ShortsID)
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	responses.WriteCreated(w, h.name+" created successfully", row)
}

func (h *Engagement[T]) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	var body shorts.EngageRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	row, err := h.svc.Withdraw(r.Context(), userID, body.ShortsID)
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	responses.WriteSuccess(w, h.name+" removed successfully", row)
}

func (h *Engagement[T]) ListByShorts(w http.ResponseWriter, r *http.Request) {
	shortsID, err := validators.PathID(r, "shorts_id")
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	q, err := ParseListQuery(r, h.svc.Descriptor())
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	page, err := h.svc.ListByShorts(r.Context(), shortsID, q)
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	responses.WritePaginated(w, h.name+" list retrieved successfully", page.Items, page.Meta)
}
