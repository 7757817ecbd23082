package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"facility-reservation-backend/internal/model"
)

// newTestStore opens an isolated in-memory SQLite database with the
// schema migrated.
func newTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive for the
	// whole test.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Facility{},
		&model.Reservation{},
		&model.Notice{},
		&model.AdminSetting{},
		&model.AdminLog{},
		&model.PushSubscription{},
	))

	return NewGormStore(db), db
}

func seedFacility(t *testing.T, db *gorm.DB, name string, active bool) model.Facility {
	t.Helper()
	f := model.Facility{
		Name:      name,
		Location:  name + " hall",
		MinPeople: 1,
		MaxPeople: 10,
		IsActive:  active,
		OpenTime:  "09:00",
		CloseTime: "22:00",
	}
	require.NoError(t, db.Create(&f).Error)
	return f
}

func TestGetActiveFacility(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	active := seedFacility(t, db, "Seminar Room", true)
	inactive := seedFacility(t, db, "Closed Room", false)

	got, err := s.GetActiveFacility(ctx, active.ID)
	assert.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)
	assert.Equal(t, "Seminar Room", got.Name)

	_, err = s.GetActiveFacility(ctx, inactive.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = s.GetActiveFacility(ctx, 99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListFacilitiesNewestFirst(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	old := model.Facility{Name: "Old", CreatedAt: time.Now().Add(-2 * time.Hour)}
	recent := model.Facility{Name: "Recent", CreatedAt: time.Now().Add(-1 * time.Hour)}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	facilities, err := s.ListFacilities(ctx)
	require.NoError(t, err)
	require.Len(t, facilities, 2)
	assert.Equal(t, "Recent", facilities[0].Name)
	assert.Equal(t, "Old", facilities[1].Name)
}

func TestActiveFacilityRefsSortedByName(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	seedFacility(t, db, "Bravo", true)
	seedFacility(t, db, "Alpha", true)
	seedFacility(t, db, "Hidden", false)

	refs, err := s.ActiveFacilityRefs(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "Alpha", refs[0].Name)
	assert.Equal(t, "Bravo", refs[1].Name)
}

func TestListNoticesOrdering(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	notices := []model.Notice{
		{Title: "old unpinned", Content: "c", IsActive: true, CreatedAt: now.Add(-3 * time.Hour)},
		{Title: "new unpinned", Content: "c", IsActive: true, CreatedAt: now.Add(-1 * time.Hour)},
		{Title: "old pinned", Content: "c", IsActive: true, IsPinned: true, CreatedAt: now.Add(-4 * time.Hour)},
		{Title: "new pinned", Content: "c", IsActive: true, IsPinned: true, CreatedAt: now.Add(-2 * time.Hour)},
		{Title: "inactive", Content: "c", IsActive: false, IsPinned: true, CreatedAt: now},
	}
	for i := range notices {
		require.NoError(t, db.Create(&notices[i]).Error)
	}

	got, err := s.ListNotices(ctx, true, 10)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "new pinned", got[0].Title)
	assert.Equal(t, "old pinned", got[1].Title)
	assert.Equal(t, "new unpinned", got[2].Title)
	assert.Equal(t, "old unpinned", got[3].Title)

	// Without the active filter the inactive pinned notice leads.
	all, err := s.ListNotices(ctx, false, 10)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "inactive", all[0].Title)

	limited, err := s.ListNotices(ctx, true, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func seedReservation(t *testing.T, db *gorm.DB, facilityID int64, status string, startAt, endAt time.Time, mutate func(*model.Reservation)) model.Reservation {
	t.Helper()
	r := model.Reservation{
		FacilityID:     facilityID,
		Status:         status,
		Purpose:        "meeting",
		NumPeople:      4,
		StartAt:        startAt,
		EndAt:          endAt,
		ApplicantName:  "Kim",
		ApplicantPhone: "010-1234-5678",
	}
	if mutate != nil {
		mutate(&r)
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func TestCalendarReservations(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	f1 := seedFacility(t, db, "Room A", true)
	f2 := seedFacility(t, db, "Room B", true)

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	inBoundsPending := seedReservation(t, db, f1.ID, model.StatusPending, base, base.Add(time.Hour), nil)
	inBoundsApproved := seedReservation(t, db, f2.ID, model.StatusApproved, base.Add(2*time.Hour), base.Add(3*time.Hour), nil)
	seedReservation(t, db, f1.ID, model.StatusRejected, base, base.Add(time.Hour), nil)
	seedReservation(t, db, f1.ID, model.StatusApproved, base.Add(72*time.Hour), base.Add(73*time.Hour), nil)

	from := base.Add(-time.Hour)
	to := base.Add(24 * time.Hour)

	// facilityId=all spans facilities and keeps only pending/approved.
	views, err := s.CalendarReservations(ctx, CalendarFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, inBoundsPending.ID, views[0].ID)
	assert.Equal(t, inBoundsApproved.ID, views[1].ID)
	assert.Equal(t, "Room A", views[0].Facility.Name)
	assert.Equal(t, "Room A hall", views[0].Facility.Location)
	assert.Equal(t, "Room B", views[1].Facility.Name)

	// Facility filter narrows to one facility.
	views, err = s.CalendarReservations(ctx, CalendarFilter{From: &from, To: &to, FacilityID: f2.ID})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, inBoundsApproved.ID, views[0].ID)

	// No bounds returns everything pending/approved, start_at ascending.
	views, err = s.CalendarReservations(ctx, CalendarFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.True(t, views[0].StartAt.Before(views[1].StartAt))
	assert.True(t, views[1].StartAt.Before(views[2].StartAt))
}

func TestPublicReservationsAsymmetricBounds(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	f := seedFacility(t, db, "Room A", true)
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Starts inside the window but ends after To: excluded because the
	// public query bounds end_at with To.
	seedReservation(t, db, f.ID, model.StatusApproved, base, base.Add(48*time.Hour), nil)
	inside := seedReservation(t, db, f.ID, model.StatusPending, base.Add(time.Hour), base.Add(2*time.Hour), nil)
	seedReservation(t, db, f.ID, model.StatusCancelled, base.Add(time.Hour), base.Add(2*time.Hour), nil)

	from := base
	to := base.Add(24 * time.Hour)
	got, err := s.PublicReservations(ctx, PublicFilter{FacilityID: f.ID, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)
	assert.Equal(t, model.StatusPending, got[0].Status)
}

func TestReservationsByPhone(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	f := seedFacility(t, db, "Room A", true)
	base := time.Now()

	hyphenated := seedReservation(t, db, f.ID, model.StatusPending, base, base.Add(time.Hour), func(r *model.Reservation) {
		r.ApplicantPhone = "010-1234-5678"
		r.CreatedAt = base.Add(-2 * time.Hour)
	})
	bare := seedReservation(t, db, f.ID, model.StatusRejected, base, base.Add(time.Hour), func(r *model.Reservation) {
		r.ApplicantPhone = "01012345678"
		r.CreatedAt = base.Add(-1 * time.Hour)
	})
	seedReservation(t, db, f.ID, model.StatusPending, base, base.Add(time.Hour), func(r *model.Reservation) {
		r.ApplicantPhone = "010-9999-0000"
	})

	// The hyphenated query matches both stored forms, newest first, any
	// status, with the facility reference attached.
	views, err := s.ReservationsByPhone(ctx, "010-1234-5678", "01012345678")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, bare.ID, views[0].ID)
	assert.Equal(t, hyphenated.ID, views[1].ID)
	assert.Equal(t, "Room A", views[0].Facility.Name)

	// The bare query finds the same two rows.
	views, err = s.ReservationsByPhone(ctx, "01012345678", "01012345678")
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestReservationsByEmail(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	f := seedFacility(t, db, "Room A", true)
	base := time.Now()
	match := seedReservation(t, db, f.ID, model.StatusApproved, base, base.Add(time.Hour), func(r *model.Reservation) {
		r.ApplicantEmail = "kim@example.com"
	})
	seedReservation(t, db, f.ID, model.StatusApproved, base, base.Add(time.Hour), func(r *model.Reservation) {
		r.ApplicantEmail = "other@example.com"
	})

	views, err := s.ReservationsByEmail(ctx, "kim@example.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, match.ID, views[0].ID)
}

func TestUpdateReservationStatus(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	f := seedFacility(t, db, "Room A", true)
	r := seedReservation(t, db, f.ID, model.StatusPending, time.Now(), time.Now().Add(time.Hour), nil)

	updated, err := s.UpdateReservationStatus(ctx, r.ID, model.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, updated.Status)

	var stored model.Reservation
	require.NoError(t, db.First(&stored, r.ID).Error)
	assert.Equal(t, model.StatusApproved, stored.Status)

	_, err = s.UpdateReservationStatus(ctx, 99999, model.StatusApproved)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListAdminLogs(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	logs := []model.AdminLog{
		{Action: "facility_create", Details: map[string]any{}, CreatedAt: now.Add(-3 * time.Hour)},
		{Action: "reservation_status", Details: map[string]any{}, CreatedAt: now.Add(-2 * time.Hour)},
		{Action: "reservation_status", Details: map[string]any{}, CreatedAt: now.Add(-1 * time.Hour)},
	}
	for i := range logs {
		require.NoError(t, db.Create(&logs[i]).Error)
	}

	got, err := s.ListAdminLogs(ctx, "", 50)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, logs[2].ID, got[0].ID)

	got, err = s.ListAdminLogs(ctx, "reservation_status", 50)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.ListAdminLogs(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSettingsUpsert(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Setting(ctx, "theme")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, s.UpsertSetting(ctx, "theme", "blue"))
	require.NoError(t, s.UpsertSetting(ctx, "theme", "green"))

	value, err := s.Setting(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "green", value)
}

func TestSubscriptionUpsertAndDelete(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	sub := model.PushSubscription{Endpoint: "https://push.example/1", P256DH: "key", Auth: "auth"}
	require.NoError(t, s.UpsertSubscription(ctx, &sub))

	replaced := model.PushSubscription{Endpoint: "https://push.example/1", P256DH: "key2", Auth: "auth2"}
	require.NoError(t, s.UpsertSubscription(ctx, &replaced))

	subs, err := s.Subscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "key2", subs[0].P256DH)

	require.NoError(t, s.DeleteSubscription(ctx, "https://push.example/1"))
	var count int64
	db.Model(&model.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
