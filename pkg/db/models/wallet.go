package models

import "github.com/shopspring/decimal"

// Wallet holds a user's non-negative balance. One per user.
type Wallet struct {
	ID     int64           `gorm:"column:wallet_id;primaryKey;autoIncrement" json:"wallet_id"`
	UserID int64           `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Amount decimal.Decimal `gorm:"column:wallet_amount;type:numeric(12,2);not null;default:0" json:"walletAmount"`
	Audit
}

func (Wallet) TableName() string { return "wallets" }
