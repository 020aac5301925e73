package catalog

import (
	"strings"
	"time"

	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	"gorm.io/datatypes"
)

type PlanTextLineInput struct {
	Text string `json:"txt" validate:"required,max=200"`
	Icon string `json:"icon" validate:"omitempty,max=2048"`
}

func textLines(in []PlanTextLineInput) datatypes.JSONSlice[models.PlanTextLine] {
	lines := make([]models.PlanTextLine, 0, len(in))
	for _, line := range in {
		lines = append(lines, models.PlanTextLine{
			Text: strings.TrimSpace(line.Text),
			Icon: strings.TrimSpace(line.Icon),
		})
	}
	return datatypes.JSONSlice[models.PlanTextLine](lines)
}

type CreatePlanRequest struct {
	Name            string              `json:"name" validate:"required,min=2,max=100"`
	Emozi           string              `json:"emozi" validate:"required,max=16"`
	StartDate       time.Time           `json:"start_date" validate:"required"`
	MainHeadingText string              `json:"main_heading_text" validate:"required,max=200"`
	TimePeriod      string              `json:"time_period" validate:"required,max=50"`
	TextLines       []PlanTextLineInput `json:"text_line" validate:"omitempty,max=20,dive"`
}

func (r CreatePlanRequest) ToModel(_ int64) *models.Plan {
	return &models.Plan{
		Name:            strings.TrimSpace(r.Name),
		Emozi:           strings.TrimSpace(r.Emozi),
		StartDate:       r.StartDate.UTC(),
		MainHeadingText: strings.TrimSpace(r.MainHeadingText),
		TimePeriod:      strings.TrimSpace(r.TimePeriod),
		TextLines:       textLines(r.TextLines),
	}
}

type UpdatePlanRequest struct {
	Name            *string             `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Emozi           *string             `json:"emozi,omitempty" validate:"omitempty,max=16"`
	StartDate       *time.Time          `json:"start_date,omitempty"`
	MainHeadingText *string             `json:"main_heading_text,omitempty" validate:"omitempty,max=200"`
	TimePeriod      *string             `json:"time_period,omitempty" validate:"omitempty,max=50"`
	TextLines       []PlanTextLineInput `json:"text_line,omitempty" validate:"omitempty,max=20,dive"`
	Status          *bool               `json:"status,omitempty"`
}

func (r UpdatePlanRequest) Changes() map[string]any {
	p := patch{}.
		str("name", r.Name).
		str("emozi", r.Emozi).
		at("start_date", r.StartDate).
		str("main_heading_text", r.MainHeadingText).
		str("time_period", r.TimePeriod).
		flag("status", r.Status)
	if r.TextLines != nil {
		p["text_line"] = textLines(r.TextLines)
	}
	return p
}

type CreatePlanSubscriptionRequest struct {
	PlanID            int64                    `json:"plan_id" validate:"required,gt=0"`
	PaymentStatus     *enums.PaymentStatus     `json:"payment_status,omitempty" validate:"omitempty,enum"`
	ExpiryDate        *time.Time               `json:"expiry_date,omitempty"`
	TransactionID     *string                  `json:"transaction_id,omitempty" validate:"omitempty,max=200"`
	TransactionStatus *enums.TransactionStatus `json:"transaction_status,omitempty" validate:"omitempty,enum"`
}

// ToModel subscribes the caller.
func (r CreatePlanSubscriptionRequest) ToModel(actor int64) *models.PlanSubscriptionByUser {
	sub := &models.PlanSubscriptionByUser{
		PlanID:            r.PlanID,
		UserID:            actor,
		PaymentStatus:     enums.PaymentStatusPending,
		TransactionID:     trimmed(r.TransactionID),
		TransactionStatus: enums.TransactionStatusPending,
	}
	if r.ExpiryDate != nil {
		expiry := r.ExpiryDate.UTC()
		sub.ExpiryDate = &expiry
	}
	if r.PaymentStatus != nil {
		sub.PaymentStatus = *r.PaymentStatus
	}
	if r.TransactionStatus != nil {
		sub.TransactionStatus = *r.TransactionStatus
	}
	return sub
}

type UpdatePlanSubscriptionRequest struct {
	PlanID            *int64                   `json:"plan_id,omitempty" validate:"omitempty,gt=0"`
	PaymentStatus     *enums.PaymentStatus     `json:"payment_status,omitempty" validate:"omitempty,enum"`
	ExpiryDate        *time.Time               `json:"expiry_date,omitempty"`
	TransactionID     *string                  `json:"transaction_id,omitempty" validate:"omitempty,max=200"`
	TransactionStatus *enums.TransactionStatus `json:"transaction_status,omitempty" validate:"omitempty,enum"`
	Status            *bool                    `json:"status,omitempty"`
}

func (r UpdatePlanSubscriptionRequest) Changes() map[string]any {
	p := patch{}.
		i64("plan_id", r.PlanID).
		at("expiry_date", r.ExpiryDate).
		str("transaction_id", r.TransactionID).
		flag("status", r.Status)
	p = val(p, "payment_status", r.PaymentStatus)
	return val(p, "transaction_status", r.TransactionStatus)
}
