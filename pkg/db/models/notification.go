package models

// Notification is one in-app message addressed to a single user.
type Notification struct {
	ID                 int64  `gorm:"column:notification_id;primaryKey;autoIncrement" json:"notification_id"`
	NotificationTypeID int64  `gorm:"column:notification_type_id;not null" json:"notification_type_id"`
	Text               string `gorm:"column:notification_txt;type:text;not null" json:"notification_txt"`
	UserID             int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	IsRead             bool   `gorm:"column:is_read;not null;default:false" json:"is_read"`
	Audit
}

func (Notification) TableName() string { return "notifications" }

type NotificationType struct {
	ID    int64   `gorm:"column:notification_type_id;primaryKey;autoIncrement" json:"notification_type_id"`
	Name  string  `gorm:"column:notification_type;not null" json:"notification_type"`
	Emoji *string `gorm:"column:emoji" json:"emoji"`
	Audit
}

func (NotificationType) TableName() string { return "notification_types" }
