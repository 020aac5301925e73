package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/astrosocial-backend/api/responses"
	"github.com/angelmondragon/astrosocial-backend/api/validators"
	"github.com/angelmondragon/astrosocial-backend/internal/wallets"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

// WalletOwner reads and adjusts the caller's own wallet.
type WalletOwner interface {
	GetByUser(ctx context.Context, userID int64) (*models.Wallet, error)
	UpdateByUser(ctx context.Context, userID int64, req wallets.UpdateByAuthRequest) (*models.Wallet, error)
}

func GetWalletByAuth(svc WalletOwner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		wallet, err := svc.GetByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Wallet retrieved successfully", wallet)
	}
}

func UpdateWalletByAuth(svc WalletOwner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body wallets.UpdateByAuthRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		wallet, err := svc.UpdateByUser(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Wallet updated successfully", wallet)
	}
}
