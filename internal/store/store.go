package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"facility-reservation-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	ListFacilities(ctx context.Context) ([]model.Facility, error)
	CreateFacility(ctx context.Context, f *model.Facility) error
	GetActiveFacility(ctx context.Context, id int64) (model.Facility, error)
	ActiveFacilityRefs(ctx context.Context) ([]FacilityRef, error)

	CalendarReservations(ctx context.Context, filter CalendarFilter) ([]ReservationView, error)
	PublicReservations(ctx context.Context, filter PublicFilter) ([]PublicReservation, error)
	ReservationsByPhone(ctx context.Context, raw, normalized string) ([]ReservationView, error)
	ReservationsByEmail(ctx context.Context, email string) ([]ReservationView, error)
	CreateReservation(ctx context.Context, r *model.Reservation) error
	GetReservation(ctx context.Context, id int64) (model.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status string) (model.Reservation, error)

	ListNotices(ctx context.Context, activeOnly bool, limit int) ([]model.Notice, error)
	CreateNotice(ctx context.Context, n *model.Notice) error

	ListAdminLogs(ctx context.Context, action string, limit int) ([]model.AdminLog, error)
	AppendAdminLog(ctx context.Context, l *model.AdminLog) error

	Setting(ctx context.Context, key string) (string, error)
	UpsertSetting(ctx context.Context, key, value string) error

	UpsertSubscription(ctx context.Context, s *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	Subscriptions(ctx context.Context) ([]model.PushSubscription, error)

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// --- Facilities ---

func (s *gormStore) ListFacilities(ctx context.Context) ([]model.Facility, error) {
	var facilities []model.Facility
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&facilities).Error
	return facilities, err
}

func (s *gormStore) CreateFacility(ctx context.Context, f *model.Facility) error {
	return s.db.WithContext(ctx).Create(f).Error
}

func (s *gormStore) GetActiveFacility(ctx context.Context, id int64) (model.Facility, error) {
	var facility model.Facility
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&facility).Error
	return facility, err
}

func (s *gormStore) ActiveFacilityRefs(ctx context.Context) ([]FacilityRef, error) {
	var refs []FacilityRef
	err := s.db.WithContext(ctx).
		Model(&model.Facility{}).
		Select("id, name").
		Where("is_active = ?", true).
		Order("name ASC").
		Scan(&refs).Error
	return refs, err
}

// --- Notices ---

func (s *gormStore) ListNotices(ctx context.Context, activeOnly bool, limit int) ([]model.Notice, error) {
	q := s.db.WithContext(ctx).
		Order("is_pinned DESC, created_at DESC").
		Limit(limit)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var notices []model.Notice
	err := q.Find(&notices).Error
	return notices, err
}

func (s *gormStore) CreateNotice(ctx context.Context, n *model.Notice) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// --- Admin logs ---

func (s *gormStore) ListAdminLogs(ctx context.Context, action string, limit int) ([]model.AdminLog, error) {
	q := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit)
	if action != "" {
		q = q.Where("action = ?", action)
	}
	var logs []model.AdminLog
	err := q.Find(&logs).Error
	return logs, err
}

func (s *gormStore) AppendAdminLog(ctx context.Context, l *model.AdminLog) error {
	return s.db.WithContext(ctx).Create(l).Error
}

// --- Settings ---

func (s *gormStore) Setting(ctx context.Context, key string) (string, error) {
	var setting model.AdminSetting
	if err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error; err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *gormStore) UpsertSetting(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model.AdminSetting{Key: key, Value: value}).Error
}

// --- Push subscriptions ---

func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
	}).Create(sub).Error
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).
		Delete(&model.PushSubscription{Endpoint: endpoint}).Error
}

func (s *gormStore) Subscriptions(ctx context.Context) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).Find(&subs).Error
	return subs, err
}

// facilityRefMap fetches the id/name/location projection for the given
// facility ids.
func (s *gormStore) facilityRefMap(ctx context.Context, ids []int64) (map[int64]FacilityRef, error) {
	refMap := make(map[int64]FacilityRef, len(ids))
	if len(ids) == 0 {
		return refMap, nil
	}
	var refs []FacilityRef
	if err := s.db.WithContext(ctx).
		Model(&model.Facility{}).
		Select("id, name, location").
		Where("id IN ?", ids).
		Scan(&refs).Error; err != nil {
		return nil, err
	}
	for _, r := range refs {
		refMap[r.ID] = r
	}
	return refMap, nil
}
