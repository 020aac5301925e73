package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/angelmondragon/astrosocial-backend/api/middleware"
	"github.com/angelmondragon/astrosocial-backend/api/responses"
	"github.com/angelmondragon/astrosocial-backend/api/validators"
	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/pagination"
)

// CRUD is the service surface the generic handlers drive.
type CRUD[T any] interface {
	Descriptor() resource.Descriptor
	Create(ctx context.Context, actor *int64, row *T) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, q resource.ListQuery) (resource.Page[T], error)
	ListByOwner(ctx context.Context, owner int64, q resource.ListQuery) (resource.Page[T], error)
	Update(ctx context.Context, actor *int64, id int64, changes map[string]any) (*T, error)
	Delete(ctx context.Context, actor *int64, id int64) error
}

// Resource serves create/getAll/getById/update/delete/getByAuth for one entity.
// C and U are the create and update bodies.
type Resource[T any, C resource.Creatable[T], U resource.Patch] struct {
	svc  CRUD[T]
	logg *logger.Logger
	name string
}

func NewResource[T any, C resource.Creatable[T], U resource.Patch](svc CRUD[T], logg *logger.Logger) *Resource[T, C, U] {
	return &Resource[T, C, U]{svc: svc, logg: logg, name: svc.Descriptor().Name}
}

func (h *Resource[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var body C
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	actor := middleware.UserIDFromContext(r.Context())
	row, err := h.svc.Create(r.Context(), actorRef(actor), body.ToModel(actor))
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	responses.WriteCreated(w, h.name+" created successfully", row)
}

func (h *Resource[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	h.ListWith(nil)(w, r)
}

// ListWith serves getAll with scope applied to the parsed query.
func (h *Resource[T, C, U]) ListWith(scope func(*http.Request, resource.ListQuery) (resource.ListQuery, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := ParseListQuery(r, h.svc.Descriptor())
		if err == nil && scope != nil {
			q, err = scope(r, q)
		}
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		page, err := h.svc.List(r.Context(), q)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		responses.WritePaginated(w, h.name+" list retrieved successfully", page.Items, page.Meta)
	}
}

// ListByAuth lists rows owned by the caller.
func (h *Resource[T, C, U]) ListByAuth(w http.ResponseWriter, r *http.Request) {
	q, err := ParseListQuery(r, h.svc.Descriptor())
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	page, err := h.svc.ListByOwner(r.Context(), middleware.UserIDFromContext(r.Context()), q)
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	responses.WritePaginated(w, h.name+" list retrieved successfully", page.Items, page.Meta)
}

func (h *Resource[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validators.PathID(r, "id")
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	row, err := h.svc.Get(r.Context(), id)
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	responses.WriteSuccess(w, h.name+" retrieved successfully", row)
}

func (h *Resource[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validators.PathID(r, "id")
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	var body U
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	actor := middleware.UserIDFromContext(r.Context())
	row, err := h.svc.Update(r.Context(), actorRef(actor), id, body.Changes())
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	responses.WriteSuccess(w, h.name+" updated successfully", row)
}

func (h *Resource[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validators.PathID(r, "id")
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	actor := middleware.UserIDFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), actorRef(actor), id); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	responses.WriteSuccess(w, h.name+" deleted successfully", nil)
}

// ParseListQuery reads page, limit, search, status, sortBy, sortOrder and the
// descriptor's equality filters from the query string. Without a status
// parameter, DefaultActive descriptors list active rows only.
func ParseListQuery(r *http.Request, desc resource.Descriptor) (resource.ListQuery, error) {
	page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1_000_000)
	if err != nil {
		return resource.ListQuery{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return resource.ListQuery{}, err
	}
	status, err := validators.ParseQueryBool(r, "status")
	if err != nil {
		return resource.ListQuery{}, err
	}
	values := r.URL.Query()
	q := resource.ListQuery{
		Params:    pagination.Params{Page: page, Limit: limit},
		Search:    strings.TrimSpace(values.Get("search")),
		Status:    status,
		SortBy:    values.Get("sortBy"),
		SortOrder: pagination.ParseSortOrder(values.Get("sortOrder")),
	}
	for key, column := range desc.Filters {
		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			continue
		}
		q = q.Where(column, filterValue(raw))
	}
	if q.Status == nil && desc.DefaultActive {
		q = q.ActiveOnly()
	}
	return q, nil
}

// filterValue keeps numeric ids and booleans typed so they compare correctly on every driver.
func filterValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	return raw
}

func actorRef(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

// pathScope builds a ListWith scope from a positive path id.
func pathScope(param string, scope func(resource.ListQuery, int64) resource.ListQuery) func(*http.Request, resource.ListQuery) (resource.ListQuery, error) {
	return func(r *http.Request, q resource.ListQuery) (resource.ListQuery, error) {
		id, err := validators.PathID(r, param)
		if err != nil {
			return q, err
		}
		return scope(q, id), nil
	}
}

func requireUser(r *http.Request) (int64, error) {
	id := middleware.UserIDFromContext(r.Context())
	if id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "Access denied. No token provided.")
	}
	return id, nil
}
