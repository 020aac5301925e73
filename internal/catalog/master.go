package catalog

import (
	"strings"

	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

type CreateRoleRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=50"`
	Emoji *string `json:"emoji,omitempty" validate:"omitempty,max=16"`
}

func (r CreateRoleRequest) ToModel(_ int64) *models.Role {
	return &models.Role{Name: strings.TrimSpace(r.Name), Emoji: trimmed(r.Emoji)}
}

type UpdateRoleRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Emoji  *string `json:"emoji,omitempty" validate:"omitempty,max=16"`
	Status *bool   `json:"status,omitempty"`
}

func (r UpdateRoleRequest) Changes() map[string]any {
	return patch{}.
		str("name", r.Name).
		str("emoji", r.Emoji).
		flag("status", r.Status)
}

type CreateCountryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func (r CreateCountryRequest) ToModel(_ int64) *models.Country {
	return &models.Country{Name: strings.TrimSpace(r.Name)}
}

type UpdateCountryRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Status *bool   `json:"status,omitempty"`
}

func (r UpdateCountryRequest) Changes() map[string]any {
	return patch{}.str("name", r.Name).flag("status", r.Status)
}

type CreateStateRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	CountryID int64  `json:"country_id" validate:"required,gt=0"`
}

func (r CreateStateRequest) ToModel(_ int64) *models.State {
	return &models.State{Name: strings.TrimSpace(r.Name), CountryID: r.CountryID}
}

type UpdateStateRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	CountryID *int64  `json:"country_id,omitempty" validate:"omitempty,gt=0"`
	Status    *bool   `json:"status,omitempty"`
}

func (r UpdateStateRequest) Changes() map[string]any {
	return patch{}.str("name", r.Name).i64("country_id", r.CountryID).flag("status", r.Status)
}

type CreateCityRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	StateID   int64  `json:"state_id" validate:"required,gt=0"`
	CountryID int64  `json:"country_id" validate:"required,gt=0"`
}

func (r CreateCityRequest) ToModel(_ int64) *models.City {
	return &models.City{Name: strings.TrimSpace(r.Name), StateID: r.StateID, CountryID: r.CountryID}
}

type UpdateCityRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	StateID   *int64  `json:"state_id,omitempty" validate:"omitempty,gt=0"`
	CountryID *int64  `json:"country_id,omitempty" validate:"omitempty,gt=0"`
	Status    *bool   `json:"status,omitempty"`
}

func (r UpdateCityRequest) Changes() map[string]any {
	return patch{}.
		str("name", r.Name).
		i64("state_id", r.StateID).
		i64("country_id", r.CountryID).
		flag("status", r.Status)
}

type CreateCategoryRequest struct {
	Name  string  `json:"category_name" validate:"required,min=2,max=100"`
	Emozi *string `json:"emozi,omitempty" validate:"omitempty,max=16"`
}

func (r CreateCategoryRequest) ToModel(_ int64) *models.Category {
	return &models.Category{Name: strings.TrimSpace(r.Name), Emozi: trimmed(r.Emozi)}
}

type UpdateCategoryRequest struct {
	Name   *string `json:"category_name,omitempty" validate:"omitempty,min=2,max=100"`
	Emozi  *string `json:"emozi,omitempty" validate:"omitempty,max=16"`
	Status *bool   `json:"status,omitempty"`
}

func (r UpdateCategoryRequest) Changes() map[string]any {
	return patch{}.str("category_name", r.Name).str("emozi", r.Emozi).flag("status", r.Status)
}

type CreateAppCategoryRequest struct {
	Name  string  `json:"categoryName" validate:"required,min=2,max=100"`
	Image *string `json:"image,omitempty" validate:"omitempty,max=2048"`
}

func (r CreateAppCategoryRequest) ToModel(_ int64) *models.AppCategory {
	return &models.AppCategory{Name: strings.TrimSpace(r.Name), Image: trimmed(r.Image)}
}

type UpdateAppCategoryRequest struct {
	Name   *string `json:"categoryName,omitempty" validate:"omitempty,min=2,max=100"`
	Image  *string `json:"image,omitempty" validate:"omitempty,max=2048"`
	Status *bool   `json:"status,omitempty"`
}

func (r UpdateAppCategoryRequest) Changes() map[string]any {
	return patch{}.str("category_name", r.Name).str("image", r.Image).flag("status", r.Status)
}

type CreateStatusRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=50"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=32"`
	Emoji *string `json:"emoji,omitempty" validate:"omitempty,max=16"`
}

func (r CreateStatusRequest) ToModel(_ int64) *models.StatusLabel {
	return &models.StatusLabel{Name: strings.TrimSpace(r.Name), Color: trimmed(r.Color), Emoji: trimmed(r.Emoji)}
}

type UpdateStatusRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Color  *string `json:"color,omitempty" validate:"omitempty,max=32"`
	Emoji  *string `json:"emoji,omitempty" validate:"omitempty,max=16"`
	Status *bool   `json:"status,omitempty"`
}

func (r UpdateStatusRequest) Changes() map[string]any {
	return patch{}.
		str("name", r.Name).
		str("color", r.Color).
		str("emoji", r.Emoji).
		flag("status", r.Status)
}

// StatusPatch is one entry of a bulk status label update.
type StatusPatch struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	UpdateStatusRequest
}

type UpdateAllStatusesRequest struct {
	Statuses []StatusPatch `json:"statuses" validate:"required,min=1,max=100,dive"`
}

type CreateOTPTypeRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

func (r CreateOTPTypeRequest) ToModel(_ int64) *models.OTPType {
	return &models.OTPType{Name: strings.TrimSpace(r.Name)}
}

type UpdateOTPTypeRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Status *bool   `json:"status,omitempty"`
}

func (r UpdateOTPTypeRequest) Changes() map[string]any {
	return patch{}.str("name", r.Name).flag("status", r.Status)
}

type CreateNotificationTypeRequest struct {
	Name  string  `json:"notification_type" validate:"required,min=2,max=100"`
	Emoji *string `json:"emoji,omitempty" validate:"omitempty,max=16"`
}

func (r CreateNotificationTypeRequest) ToModel(_ int64) *models.NotificationType {
	return &models.NotificationType{Name: strings.TrimSpace(r.Name), Emoji: trimmed(r.Emoji)}
}

type UpdateNotificationTypeRequest struct {
	Name   *string `json:"notification_type,omitempty" validate:"omitempty,min=2,max=100"`
	Emoji  *string `json:"emoji,omitempty" validate:"omitempty,max=16"`
	Status *bool   `json:"status,omitempty"`
}

func (r UpdateNotificationTypeRequest) Changes() map[string]any {
	return patch{}.str("notification_type", r.Name).str("emoji", r.Emoji).flag("status", r.Status)
}

type CreateGiftRequest struct {
	Name string          `json:"name" validate:"required,min=2,max=100"`
	Cost decimal.Decimal `json:"cost" validate:"gte=0"`
}

func (r CreateGiftRequest) ToModel(_ int64) *models.Gift {
	return &models.Gift{Name: strings.TrimSpace(r.Name), Cost: r.Cost}
}

type UpdateGiftRequest struct {
	Name   *string          `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Cost   *decimal.Decimal `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Status *bool            `json:"status,omitempty"`
}

func (r UpdateGiftRequest) Changes() map[string]any {
	return patch{}.str("name", r.Name).dec("cost", r.Cost).flag("status", r.Status)
}
