package model

import "time"

// Facility represents a bookable physical space.
type Facility struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:256;not null" json:"name"`
	Location    string          `gorm:"size:256" json:"location"`
	Description string          `json:"description"`
	Images      []string        `gorm:"serializer:json" json:"images"`
	MinPeople   int             `json:"min_people"`
	MaxPeople   int             `json:"max_people"`
	Features    map[string]bool `gorm:"serializer:json" json:"features"`
	IsActive    bool            `json:"is_active"`
	OpenTime    string          `gorm:"size:8" json:"open_time"`
	CloseTime   string          `gorm:"size:8" json:"close_time"`
	ClosedDays  []string        `gorm:"serializer:json" json:"closed_days"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}
