package models

// MyShorts is a short video or image posted by a user.
type MyShorts struct {
	ID         int64  `gorm:"column:my_shorts_id;primaryKey;autoIncrement" json:"my_shorts_id"`
	Title      string `gorm:"column:title;not null" json:"title"`
	ImageVideo string `gorm:"column:image_video;not null" json:"image_video"`
	Audit
}

func (MyShorts) TableName() string { return "my_shorts" }

// LikeShorts is unique per (user, short); unliking flips status to false.
type LikeShorts struct {
	ID       int64 `gorm:"column:like_shorts_id;primaryKey;autoIncrement" json:"like_shorts_id"`
	UserID   int64 `gorm:"column:user_id;not null;uniqueIndex:ux_like_shorts_user_shorts" json:"user_id"`
	ShortsID int64 `gorm:"column:shorts_id;not null;uniqueIndex:ux_like_shorts_user_shorts;index" json:"shorts_id"`
	Audit
}

func (LikeShorts) TableName() string { return "like_shorts" }

type ShareShorts struct {
	ID       int64 `gorm:"column:share_shorts_id;primaryKey;autoIncrement" json:"share_shorts_id"`
	UserID   int64 `gorm:"column:user_id;not null;uniqueIndex:ux_share_shorts_user_shorts" json:"user_id"`
	ShortsID int64 `gorm:"column:shorts_id;not null;uniqueIndex:ux_share_shorts_user_shorts;index" json:"shorts_id"`
	Audit
}

func (ShareShorts) TableName() string { return "share_shorts" }

type TagShorts struct {
	ID       int64 `gorm:"column:tag_shorts_id;primaryKey;autoIncrement" json:"tag_shorts_id"`
	UserID   int64 `gorm:"column:user_id;not null;uniqueIndex:ux_tag_shorts_user_shorts" json:"user_id"`
	ShortsID int64 `gorm:"column:shorts_id;not null;uniqueIndex:ux_tag_shorts_user_shorts;index" json:"shorts_id"`
	Audit
}

func (TagShorts) TableName() string { return "tag_shorts" }

type CommentShorts struct {
	ID       int64  `gorm:"column:comment_shorts_id;primaryKey;autoIncrement" json:"comment_shorts_id"`
	UserID   int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	ShortsID int64  `gorm:"column:shorts_id;not null;index" json:"shorts_id"`
	Comment  string `gorm:"column:comment;type:text;not null" json:"comment"`
	Audit
}

func (CommentShorts) TableName() string { return "comment_shorts" }
