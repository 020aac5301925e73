package models

import "github.com/shopspring/decimal"

type Gift struct {
	ID   int64           `gorm:"column:gift_id;primaryKey;autoIncrement" json:"gift_id"`
	Name string          `gorm:"column:name;not null" json:"name"`
	Cost decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null;default:0" json:"cost"`
	Audit
}

func (Gift) TableName() string { return "gifts" }
