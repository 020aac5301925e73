package wallets

import (
	"context"
	"testing"

	"github.com/angelmondragon/astrosocial-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(NewRepository(dbtest.Open(t)))
	require.NoError(t, err)
	return svc
}

func TestEnsureForUserIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.EnsureForUser(ctx, 42, nil)
	require.NoError(t, err)
	second, err := svc.EnsureForUser(ctx, 42, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.Amount.IsZero())
	assert.True(t, first.Status)
}

func TestUpdateByUserSetsAmount(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.EnsureForUser(ctx, 7, nil)
	require.NoError(t, err)

	amount := decimal.RequireFromString("150.50")
	wallet, err := svc.UpdateByUser(ctx, 7, UpdateByAuthRequest{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, wallet.Amount.Equal(amount), "got %s", wallet.Amount)
	require.NotNil(t, wallet.UpdatedBy)
	assert.Equal(t, int64(7), *wallet.UpdatedBy)
}

func TestUpdateByUserRequiresWallet(t *testing.T) {
	svc := newService(t)
	amount := decimal.NewFromInt(1)

	_, err := svc.UpdateByUser(context.Background(), 99, UpdateByAuthRequest{Amount: &amount})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateByUserRejectsEmptyPatch(t *testing.T) {
	svc := newService(t)

	_, err := svc.UpdateByUser(context.Background(), 1, UpdateByAuthRequest{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteIsSoft(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	wallet, err := svc.EnsureForUser(ctx, 3, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, nil, wallet.ID))

	got, err := svc.GetByUser(ctx, 3)
	require.NoError(t, err)
	assert.False(t, got.Status)
}
