package models

import "time"

// KVEntry is one row of the key-value table that backs the snapshot store.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name used by migrations.
func (KVEntry) TableName() string {
	return "kv_entries"
}
