package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/dbtest"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalog(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	svc, err := New(db)
	require.NoError(t, err)
	return svc, db
}

func ptr[T any](v T) *T { return &v }

func TestCountryDeleteIsHard(t *testing.T) {
	svc, db := newCatalog(t)
	ctx := context.Background()

	country, err := svc.Countries.Create(ctx, nil, CreateCountryRequest{Name: "India"}.ToModel(0))
	require.NoError(t, err)
	require.NoError(t, svc.Countries.Delete(ctx, nil, country.ID))

	var count int64
	require.NoError(t, db.Model(&models.Country{}).Count(&count).Error)
	assert.Zero(t, count)

	err = svc.Countries.Delete(ctx, nil, country.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestCitiesByStateSkipsInactive(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	for _, name := range []string{"Pune", "Mumbai", "Nagpur"} {
		_, err := svc.Cities.Create(ctx, nil, CreateCityRequest{Name: name, StateID: 2, CountryID: 1}.ToModel(0))
		require.NoError(t, err)
	}
	other, err := svc.Cities.Create(ctx, nil, CreateCityRequest{Name: "Jaipur", StateID: 2, CountryID: 1}.ToModel(0))
	require.NoError(t, err)

	inactive, err := svc.Cities.Update(ctx, nil, other.ID, UpdateCityRequest{Status: ptr(false)}.Changes())
	require.NoError(t, err)
	require.False(t, inactive.Status)

	page, err := svc.Cities.List(ctx, CitiesByState(resource.ListQuery{}, 2))
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Pune", page.Items[0].Name)

	page, err = svc.Cities.List(ctx, CitiesByCountry(resource.ListQuery{}, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Meta.TotalItems)
}

func TestStreamsBySessionStatus(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	req := CreateStreamRequest{
		Title:      "Full moon live",
		Datetime:   time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC),
		StreamType: "video",
		LanguageID: 1,
	}
	scheduled, err := svc.Streams.Create(ctx, ptr(int64(9)), req.ToModel(9))
	require.NoError(t, err)
	assert.Equal(t, int64(9), scheduled.HostUserID)
	assert.Equal(t, enums.SessionStatusScheduled, scheduled.SessionStatus)
	assert.Equal(t, enums.StreamVisibilityPublic, scheduled.Visibility)

	req.SessionStatus = ptr(enums.SessionStatusLive)
	_, err = svc.Streams.Create(ctx, ptr(int64(9)), req.ToModel(9))
	require.NoError(t, err)

	q, err := StreamsBySessionStatus(resource.ListQuery{}, "live")
	require.NoError(t, err)
	page, err := svc.Streams.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, enums.SessionStatusLive, page.Items[0].SessionStatus)

	_, err = StreamsBySessionStatus(resource.ListQuery{}, "paused")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	mine, err := svc.Streams.ListByOwner(ctx, 9, resource.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.Meta.TotalItems)
}

func TestBookingDefaultsToCaller(t *testing.T) {
	booking := CreateBookingRequest{AstrologerID: 3}.ToModel(11)
	assert.Equal(t, int64(11), booking.UserID)
	assert.Equal(t, enums.BookingStatusPending, booking.BookingStatus)
	assert.Nil(t, booking.CallStatus)

	changes := UpdateBookingRequest{CallStatus: ptr(enums.CallStatusApprove)}.Changes()
	assert.Equal(t, map[string]any{"call_status": enums.CallStatusApprove}, changes)
}

func TestUpdateAllStatusesIsAtomic(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	open, err := svc.Statuses.Create(ctx, nil, CreateStatusRequest{Name: "Open"}.ToModel(0))
	require.NoError(t, err)
	closed, err := svc.Statuses.Create(ctx, nil, CreateStatusRequest{Name: "Closed"}.ToModel(0))
	require.NoError(t, err)

	_, err = svc.Statuses.UpdateAll(ctx, nil, UpdateAllStatusesRequest{Statuses: []StatusPatch{
		{ID: open.ID, UpdateStatusRequest: UpdateStatusRequest{Color: ptr("#00ff00")}},
		{ID: 999, UpdateStatusRequest: UpdateStatusRequest{Color: ptr("#ff0000")}},
	}})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	reloaded, err := svc.Statuses.Get(ctx, open.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Color)

	actor := int64(1)
	rows, err := svc.Statuses.UpdateAll(ctx, &actor, UpdateAllStatusesRequest{Statuses: []StatusPatch{
		{ID: open.ID, UpdateStatusRequest: UpdateStatusRequest{Color: ptr("#00ff00")}},
		{ID: closed.ID, UpdateStatusRequest: UpdateStatusRequest{Emoji: ptr("x")}},
	}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "#00ff00", *rows[0].Color)
	assert.Equal(t, "x", *rows[1].Emoji)
	require.NotNil(t, rows[1].UpdatedBy)
}

func TestSubscriptionExpirer(t *testing.T) {
	svc, db := newCatalog(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	due, err := svc.PlanSubscriptions.Create(ctx, nil, CreatePlanSubscriptionRequest{PlanID: 1, ExpiryDate: &past}.ToModel(4))
	require.NoError(t, err)
	_, err = svc.PlanSubscriptions.Create(ctx, nil, CreatePlanSubscriptionRequest{PlanID: 1, ExpiryDate: &future}.ToModel(5))
	require.NoError(t, err)
	_, err = svc.PlanSubscriptions.Create(ctx, nil, CreatePlanSubscriptionRequest{PlanID: 2}.ToModel(6))
	require.NoError(t, err)

	expired, err := NewSubscriptionExpirer(db).ExpireDue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	row, err := svc.PlanSubscriptions.Get(ctx, due.ID)
	require.NoError(t, err)
	assert.False(t, row.Status)
}

func TestPlanTextLinesRoundTrip(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	plan, err := svc.Plans.Create(ctx, nil, CreatePlanRequest{
		Name:            "Gold",
		Emozi:           "*",
		StartDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		MainHeadingText: "Unlimited chats",
		TimePeriod:      "monthly",
		TextLines:       []PlanTextLineInput{{Text: " Priority support ", Icon: "star"}},
	}.ToModel(0))
	require.NoError(t, err)

	stored, err := svc.Plans.Get(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, stored.TextLines, 1)
	assert.Equal(t, "Priority support", stored.TextLines[0].Text)
}
