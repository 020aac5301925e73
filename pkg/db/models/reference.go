package models

type Role struct {
	ID    int64   `gorm:"column:role_id;primaryKey;autoIncrement" json:"role_id"`
	Name  string  `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Emoji *string `gorm:"column:emoji" json:"emoji"`
	Audit
}

func (Role) TableName() string { return "roles" }

type Country struct {
	ID   int64  `gorm:"column:country_id;primaryKey;autoIncrement" json:"country_id"`
	Name string `gorm:"column:name;not null" json:"name"`
	Audit
}

func (Country) TableName() string { return "countries" }

type State struct {
	ID        int64  `gorm:"column:state_id;primaryKey;autoIncrement" json:"state_id"`
	Name      string `gorm:"column:name;not null" json:"name"`
	CountryID int64  `gorm:"column:country_id;not null;index" json:"country_id"`
	Audit
}

func (State) TableName() string { return "states" }

type City struct {
	ID        int64  `gorm:"column:city_id;primaryKey;autoIncrement" json:"city_id"`
	Name      string `gorm:"column:name;not null" json:"name"`
	StateID   int64  `gorm:"column:state_id;not null;index" json:"state_id"`
	CountryID int64  `gorm:"column:country_id;not null;index" json:"country_id"`
	Audit
}

func (City) TableName() string { return "cities" }

type Category struct {
	ID    int64   `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	Name  string  `gorm:"column:category_name;not null" json:"category_name"`
	Emozi *string `gorm:"column:emozi" json:"emozi"`
	Audit
}

func (Category) TableName() string { return "categories" }

type AppCategory struct {
	ID    int64   `gorm:"column:app_category_id;primaryKey;autoIncrement" json:"app_category_id"`
	Name  string  `gorm:"column:category_name;not null" json:"categoryName"`
	Image *string `gorm:"column:image" json:"image"`
	Audit
}

func (AppCategory) TableName() string { return "app_categories" }

// StatusLabel is a display label for workflow states (name/color/emoji).
type StatusLabel struct {
	ID    int64   `gorm:"column:status_id;primaryKey;autoIncrement" json:"status_id"`
	Name  string  `gorm:"column:name;not null" json:"name"`
	Color *string `gorm:"column:color" json:"color"`
	Emoji *string `gorm:"column:emoji" json:"emoji"`
	Audit
}

func (StatusLabel) TableName() string { return "statuses" }
