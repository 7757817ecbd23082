package model

import "time"

// Notice is an announcement with an optional pin and display window.
type Notice struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:256;not null" json:"title"`
	Content   string     `gorm:"not null" json:"content"`
	IsActive  bool       `gorm:"index" json:"is_active"`
	IsPinned  bool       `json:"is_pinned"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}
