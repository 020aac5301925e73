package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/astrosocial-backend/api/middleware"
	"github.com/angelmondragon/astrosocial-backend/internal/catalog"
	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/dbtest"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/pagination"
)

func withUser(r *http.Request, id int64) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), id))
}

func stateRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := catalog.New(dbtest.Open(t))
	require.NoError(t, err)

	h := NewResource[models.State, catalog.CreateStateRequest, catalog.UpdateStateRequest](svc.States, nil)
	r := chi.NewRouter()
	r.Post("/create", h.Create)
	r.Get("/getAll", h.List)
	r.Get("/getById/{id}", h.Get)
	r.Get("/getByCountryId/{countryId}", h.ListWith(StatesByCountry))
	r.Put("/update/{id}", h.Update)
	r.Delete("/delete/{id}", h.Delete)
	return r
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestResourceCRUDFlow(t *testing.T) {
	h := stateRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(`{"name":" Maharashtra ","country_id":1}`)), 1))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data models.State `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Maharashtra", created.Data.Name)
	require.NotNil(t, created.Data.CreatedBy)
	assert.Equal(t, int64(1), *created.Data.CreatedBy)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPut, "/update/"+itoa(created.Data.ID), strings.NewReader(`{"name":"Goa"}`)), 2))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getById/"+itoa(created.Data.ID), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched struct {
		Data models.State `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, "Goa", fetched.Data.Name)
	require.NotNil(t, fetched.Data.UpdatedBy)
	assert.Equal(t, int64(2), *fetched.Data.UpdatedBy)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/delete/"+itoa(created.Data.ID), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getById/"+itoa(created.Data.ID), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResourceRejectsBadInput(t *testing.T) {
	h := stateRouter(t)

	cases := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"unknown field", http.MethodPost, "/create", `{"name":"Goa","country_id":1,"extra":true}`, http.StatusBadRequest},
		{"missing field", http.MethodPost, "/create", `{"name":"Goa"}`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/getById/abc", "", http.StatusBadRequest},
		{"zero id", http.MethodDelete, "/delete/0", "", http.StatusBadRequest},
		{"missing row", http.MethodPut, "/update/999", `{"name":"Goa"}`, http.StatusNotFound},
		{"limit too large", http.MethodGet, "/getAll?limit=500", "", http.StatusBadRequest},
		{"bad status", http.MethodGet, "/getAll?status=maybe", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body)))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestResourceListPaginationAndFilters(t *testing.T) {
	h := stateRouter(t)
	for _, body := range []string{
		`{"name":"Kerala","country_id":1}`,
		`{"name":"Karnataka","country_id":1}`,
		`{"name":"Punjab","country_id":1}`,
		`{"name":"Bavaria","country_id":2}`,
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getAll?country_id=1&limit=2&sortBy=name&sortOrder=asc", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Data       []models.State  `json:"data"`
		Pagination pagination.Meta `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Karnataka", page.Data[0].Name)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNextPage)
	assert.False(t, page.Pagination.HasPrevPage)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getAll?search="+url.QueryEscape("kar"), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, int64(1), page.Pagination.TotalItems)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getByCountryId/2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Bavaria", page.Data[0].Name)
}

func TestParseListQueryTypesFilters(t *testing.T) {
	desc := resource.Descriptor{Filters: map[string]string{
		"user_id":     "user_id",
		"is_read":     "is_read",
		"call_status": "call_status",
	}}
	req := httptest.NewRequest(http.MethodGet, "/getAll?user_id=7&is_read=false&call_status=approve&page=3&sortOrder=ASC", nil)

	q, err := ParseListQuery(req, desc)
	require.NoError(t, err)
	assert.Equal(t, int64(7), q.Filters["user_id"])
	assert.Equal(t, false, q.Filters["is_read"])
	assert.Equal(t, "approve", q.Filters["call_status"])
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, pagination.DefaultLimit, q.Limit)
	assert.Equal(t, pagination.SortAsc, q.SortOrder)
	assert.Nil(t, q.Status)
}

func TestParseListQueryDefaultActive(t *testing.T) {
	desc := resource.Descriptor{DefaultActive: true}

	q, err := ParseListQuery(httptest.NewRequest(http.MethodGet, "/getAll", nil), desc)
	require.NoError(t, err)
	require.NotNil(t, q.Status)
	assert.True(t, *q.Status)

	q, err = ParseListQuery(httptest.NewRequest(http.MethodGet, "/getAll?status=false", nil), desc)
	require.NoError(t, err)
	require.NotNil(t, q.Status)
	assert.False(t, *q.Status)
}
