package models

import (
	"time"
)

// Search is one appended lookup audit entry. The table is append-only
// analytics data; the lookup path never reads it back.
type Search struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username   string    `gorm:"type:varchar(16);not null;index:searches_username_idx;column:username" json:"username"`
	SearchedAt time.Time `gorm:"not null;index:searches_searched_at_idx;column:searched_at" json:"searched_at"`

	// Full account snapshot at search time
	AccountData string `gorm:"type:text;column:account_data" json:"account_data,omitempty"`
}

// TableName specifies the table name for Search
func (Search) TableName() string {
	return "searches"
}
