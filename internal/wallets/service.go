package wallets

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const notFoundForUserMessage = "Wallet not found for this user"

// UpdateByAuthRequest adjusts the caller's wallet.
type UpdateByAuthRequest struct {
	Amount *decimal.Decimal `json:"walletAmount,omitempty" validate:"omitempty,gte=0"`
	Status *bool            `json:"status,omitempty"`
}

type walletStore interface {
	resource.Store[models.Wallet]
	Ensure(ctx context.Context, userID int64, actor *int64) (*models.Wallet, error)
	FindByUser(ctx context.Context, userID int64) (*models.Wallet, error)
	UpdateByUser(ctx context.Context, userID int64, changes map[string]any) (int64, error)
}

// Service manages one wallet per user on top of the generic resource operations.
type Service struct {
	*resource.Service[models.Wallet]
	repo walletStore
}

func NewService(repo walletStore) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wallet repository is required")
	}
	generic, err := resource.NewService[models.Wallet](repo, Descriptor)
	if err != nil {
		return nil, err
	}
	return &Service{Service: generic, repo: repo}, nil
}

// EnsureForUser returns the user's wallet, creating an empty one when missing.
func (s *Service) EnsureForUser(ctx context.Context, userID int64, actor *int64) (*models.Wallet, error) {
	wallet, err := s.repo.Ensure(ctx, userID, actor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure wallet")
	}
	return wallet, nil
}

func (s *Service) GetByUser(ctx context.Context, userID int64) (*models.Wallet, error) {
	wallet, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundForUserMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wallet")
	}
	return wallet, nil
}

func (s *Service) UpdateByUser(ctx context.Context, userID int64, req UpdateByAuthRequest) (*models.Wallet, error) {
	changes := map[string]any{"updated_by": userID}
	if req.Amount != nil {
		changes["wallet_amount"] = *req.Amount
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if len(changes) == 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "At least one field must be provided for update")
	}
	affected, err := s.repo.UpdateByUser(ctx, userID, changes)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update wallet")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundForUserMessage)
	}
	return s.GetByUser(ctx, userID)
}
