package store

import (
	"time"

	"facility-reservation-backend/internal/model"
)

// FacilityRef is the minimal facility projection joined onto
// reservation listings and returned by the calendar facility list.
type FacilityRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// ReservationView is a reservation together with its facility reference.
type ReservationView struct {
	model.Reservation
	Facility FacilityRef `json:"facility"`
}

// PublicReservation is the privacy-scoped projection used by the public
// calendar: no applicant fields.
type PublicReservation struct {
	ID         int64     `json:"id"`
	FacilityID int64     `json:"facility_id"`
	Status     string    `json:"status"`
	Purpose    string    `json:"purpose"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
}

// CalendarFilter bounds the admin calendar query. Both From and To apply
// to start_at. FacilityID zero means no facility filter.
type CalendarFilter struct {
	From       *time.Time
	To         *time.Time
	FacilityID int64
}

// PublicFilter bounds the public calendar query. From applies to
// start_at, To applies to end_at.
type PublicFilter struct {
	FacilityID int64
	From       *time.Time
	To         *time.Time
}
