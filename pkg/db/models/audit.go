package models

import "time"

// Audit carries the soft-delete flag and actor stamps shared by every table.
type Audit struct {
	Status    bool      `gorm:"column:status;not null;default:true" json:"status"`
	CreatedBy *int64    `gorm:"column:created_by" json:"created_by"`
	UpdatedBy *int64    `gorm:"column:updated_by" json:"updated_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// StampCreated marks a new row as active and records the creating actor.
func (a *Audit) StampCreated(actor *int64) {
	a.Status = true
	a.CreatedBy = actor
}

// Stampable is implemented by every model embedding Audit.
type Stampable interface {
	StampCreated(actor *int64)
}

// IsActive reports whether the row has not been soft-deleted.
func (a Audit) IsActive() bool {
	return a.Status
}
