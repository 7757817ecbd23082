package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"facility-reservation-backend/config"
	"facility-reservation-backend/internal/model"
	"facility-reservation-backend/internal/store"
)

const testAdminKey = "test-admin-key"

// newTestEnv builds a router backed by an isolated in-memory SQLite
// database.
func newTestEnv(t *testing.T) (*gin.Engine, store.Store, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
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

	cfg := &config.Config{
		Server: config.ServerConfig{
			Mode:            gin.TestMode,
			AdminKey:        testAdminKey,
			AllowedOrigins:  []string{"*"},
			RateLimitPerSec: 10000,
			RateLimitBurst:  10000,
			CacheTTLSeconds: 60,
		},
	}

	s := store.NewGormStore(db)
	router := NewRouter(s, cfg, nil, nil)
	return router, s, db
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+testAdminKey)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedTestFacility(t *testing.T, db *gorm.DB, name string, active bool) model.Facility {
	t.Helper()
	f := model.Facility{
		Name:      name,
		Location:  name + " building",
		MinPeople: 1,
		MaxPeople: 10,
		IsActive:  active,
		OpenTime:  "09:00",
		CloseTime: "22:00",
	}
	require.NoError(t, db.Create(&f).Error)
	return f
}

func seedTestReservation(t *testing.T, db *gorm.DB, facilityID int64, status string, startAt time.Time) model.Reservation {
	t.Helper()
	r := model.Reservation{
		FacilityID:     facilityID,
		Status:         status,
		Purpose:        "workshop",
		NumPeople:      5,
		StartAt:        startAt,
		EndAt:          startAt.Add(time.Hour),
		ApplicantName:  "Lee",
		ApplicantPhone: "010-1234-5678",
		ApplicantEmail: "lee@example.com",
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}
