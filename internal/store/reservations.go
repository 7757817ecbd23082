package store

import (
	"context"

	"facility-reservation-backend/internal/model"
)

// CalendarReservations returns pending and approved reservations whose
// start_at falls inside the filter bounds, each carrying its facility
// reference, ordered by start_at ascending.
func (s *gormStore) CalendarReservations(ctx context.Context, filter CalendarFilter) ([]ReservationView, error) {
	q := s.db.WithContext(ctx).
		Where("status IN ?", model.CalendarStatuses).
		Order("start_at ASC")
	if filter.FacilityID != 0 {
		q = q.Where("facility_id = ?", filter.FacilityID)
	}
	if filter.From != nil {
		q = q.Where("start_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("start_at <= ?", *filter.To)
	}

	var reservations []model.Reservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return s.attachFacilities(ctx, reservations)
}

// PublicReservations returns the privacy-scoped projection for one
// facility. Note the asymmetric bounds: From limits start_at while To
// limits end_at.
func (s *gormStore) PublicReservations(ctx context.Context, filter PublicFilter) ([]PublicReservation, error) {
	q := s.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Select("id, facility_id, status, purpose, start_at, end_at").
		Where("facility_id = ?", filter.FacilityID).
		Where("status IN ?", model.CalendarStatuses).
		Order("start_at ASC")
	if filter.From != nil {
		q = q.Where("start_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("end_at <= ?", *filter.To)
	}

	var reservations []PublicReservation
	err := q.Scan(&reservations).Error
	return reservations, err
}

// ReservationsByPhone matches applicant_phone against both the raw and
// the hyphen-stripped form, any status, newest first.
func (s *gormStore) ReservationsByPhone(ctx context.Context, raw, normalized string) ([]ReservationView, error) {
	var reservations []model.Reservation
	err := s.db.WithContext(ctx).
		Where("applicant_phone = ? OR applicant_phone = ?", raw, normalized).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return s.attachFacilities(ctx, reservations)
}

// ReservationsByEmail matches applicant_email exactly, any status,
// newest first.
func (s *gormStore) ReservationsByEmail(ctx context.Context, email string) ([]ReservationView, error) {
	var reservations []model.Reservation
	err := s.db.WithContext(ctx).
		Where("applicant_email = ?", email).
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return s.attachFacilities(ctx, reservations)
}

func (s *gormStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	return s.db.WithContext(ctx).Omit("Facility").Create(r).Error
}

func (s *gormStore) GetReservation(ctx context.Context, id int64) (model.Reservation, error) {
	var reservation model.Reservation
	err := s.db.WithContext(ctx).First(&reservation, id).Error
	return reservation, err
}

// UpdateReservationStatus transitions one reservation and returns the
// updated row.
func (s *gormStore) UpdateReservationStatus(ctx context.Context, id int64, status string) (model.Reservation, error) {
	var reservation model.Reservation
	if err := s.db.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return reservation, err
	}
	if err := s.db.WithContext(ctx).
		Model(&reservation).
		Update("status", status).Error; err != nil {
		return reservation, err
	}
	return reservation, nil
}

// attachFacilities merges facility references onto reservations with a
// single lookup, mirroring the two-query-plus-map join used elsewhere.
func (s *gormStore) attachFacilities(ctx context.Context, reservations []model.Reservation) ([]ReservationView, error) {
	ids := make([]int64, 0, len(reservations))
	seen := make(map[int64]bool, len(reservations))
	for _, r := range reservations {
		if !seen[r.FacilityID] {
			seen[r.FacilityID] = true
			ids = append(ids, r.FacilityID)
		}
	}

	refMap, err := s.facilityRefMap(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ReservationView, 0, len(reservations))
	for _, r := range reservations {
		views = append(views, ReservationView{
			Reservation: r,
			Facility:    refMap[r.FacilityID],
		})
	}
	return views, nil
}
