package model

import "time"

// AdminLog is an append-only audit record of an administrative action.
type AdminLog struct {
	ID         int64          `gorm:"primaryKey" json:"id"`
	Action     string         `gorm:"size:64;index" json:"action"`
	TargetType string         `gorm:"size:32" json:"target_type"`
	TargetID   string         `gorm:"size:64" json:"target_id"`
	Details    map[string]any `gorm:"serializer:json" json:"details"`
	IPAddress  string         `gorm:"size:64" json:"ip_address"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}
