package models

import (
	"time"

	"github.com/angelmondragon/astrosocial-backend/pkg/enums"
	"gorm.io/datatypes"
)

// PlanTextLine is one bullet on a plan card.
type PlanTextLine struct {
	Text string `json:"txt"`
	Icon string `json:"icon"`
}

type Plan struct {
	ID              int64                             `gorm:"column:plan_id;primaryKey;autoIncrement" json:"plan_id"`
	Name            string                            `gorm:"column:name;not null" json:"name"`
	Emozi           string                            `gorm:"column:emozi;not null" json:"emozi"`
	StartDate       time.Time                         `gorm:"column:start_date;not null" json:"start_date"`
	MainHeadingText string                            `gorm:"column:main_heading_text;not null" json:"main_heading_text"`
	TimePeriod      string                            `gorm:"column:time_period;not null" json:"time_period"`
	TextLines       datatypes.JSONSlice[PlanTextLine] `gorm:"column:text_line" json:"text_line"`
	Audit
}

func (Plan) TableName() string { return "plans" }

// PlanSubscriptionByUser links a user to a purchased plan until ExpiryDate.
type PlanSubscriptionByUser struct {
	ID                int64                   `gorm:"column:plan_subscription_id;primaryKey;autoIncrement" json:"plan_subscription_id"`
	PlanID            int64                   `gorm:"column:plan_id;not null;index" json:"plan_id"`
	UserID            int64                   `gorm:"column:user_id;not null;index" json:"user_id"`
	PaymentStatus     enums.PaymentStatus     `gorm:"column:payment_status;not null;default:'pending'" json:"payment_status"`
	ExpiryDate        *time.Time              `gorm:"column:expiry_date;index" json:"expiry_date"`
	TransactionID     *string                 `gorm:"column:transaction_id" json:"transaction_id"`
	TransactionStatus enums.TransactionStatus `gorm:"column:transaction_status;not null;default:'pending'" json:"transaction_status"`
	Audit
}

func (PlanSubscriptionByUser) TableName() string { return "plan_subscriptions_by_user" }
