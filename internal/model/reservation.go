package model

import "time"

// Reservation statuses. Pending and approved are the ones visible on
// calendars; rejected and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// CalendarStatuses are the statuses shown on public and admin calendars.
var CalendarStatuses = []string{StatusPending, StatusApproved}

// Reservation represents a time-bound booking request against a facility.
type Reservation struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	FacilityID     int64     `gorm:"index;not null" json:"facility_id"`
	Status         string    `gorm:"size:16;index;not null;default:pending" json:"status"`
	Purpose        string    `gorm:"size:512" json:"purpose"`
	NumPeople      int       `json:"num_people"`
	StartAt        time.Time `gorm:"index;not null" json:"start_at"`
	EndAt          time.Time `gorm:"not null" json:"end_at"`
	ApplicantName  string    `gorm:"size:128" json:"applicant_name"`
	ApplicantPhone string    `gorm:"size:32;index" json:"applicant_phone"`
	ApplicantDept  string    `gorm:"size:128" json:"applicant_dept"`
	ApplicantEmail string    `gorm:"size:128;index" json:"applicant_email"`
	CreatedAt      time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Facility Facility `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ValidStatus reports whether s is a known reservation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}
