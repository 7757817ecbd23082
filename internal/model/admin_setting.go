package model

import "time"

// AdminSetting is a key-value pair upserted by key (theme, theme_mode).
type AdminSetting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"size:256" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
