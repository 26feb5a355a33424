package models

import "time"

// RecentView is one slot of a persisted recently viewed list. Slot 0 is the most recent view.
// The schema is owned by the goose migrations in pkg/migrate.
type RecentView struct {
	StorageKey string    `gorm:"column:storage_key;primaryKey;size:128"`
	Slot       int       `gorm:"column:slot;primaryKey;autoIncrement:false"`
	ProductID  string    `gorm:"column:product_id;not null;size:128"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (RecentView) TableName() string {
	return "recent_views"
}
