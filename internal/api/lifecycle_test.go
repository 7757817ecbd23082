package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facility-reservation-backend/internal/model"
)

// TestReservationLifecycle walks a reservation from facility creation to
// approval through the HTTP surface alone.
func TestReservationLifecycle(t *testing.T) {
	router, _, db := newTestEnv(t)

	// Admin registers a facility.
	w := doRequest(t, router, "POST", "/api/facilities", map[string]any{
		"name":     "Seminar Room",
		"location": "2F",
	}, true)
	require.Equal(t, http.StatusOK, w.Code)
	facilityID := int64(decodeBody(t, w)["facility"].(map[string]any)["id"].(float64))

	// A visitor submits a reservation request.
	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	w = doRequest(t, router, "POST", "/api/reservations", map[string]any{
		"facility_id":     facilityID,
		"purpose":         "study group",
		"num_people":      4,
		"start_at":        start.Format(time.RFC3339),
		"end_at":          start.Add(2 * time.Hour).Format(time.RFC3339),
		"applicant_name":  "Kim",
		"applicant_phone": "010-9876-5432",
		"applicant_email": "kim@example.com",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)
	reservation := decodeBody(t, w)["reservation"].(map[string]any)
	reservationID := int64(reservation["id"].(float64))
	assert.Equal(t, model.StatusPending, reservation["status"])

	// The pending request shows up on the public timetable without PII.
	w = doRequest(t, router, "GET", fmt.Sprintf("/api/reservations/public?facilityId=%d", facilityID), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	public := decodeBody(t, w)["reservations"].([]any)
	require.Len(t, public, 1)
	assert.NotContains(t, public[0].(map[string]any), "applicant_phone")

	// It also shows on the admin calendar.
	w = doRequest(t, router, "GET", "/api/admin/calendar?facilityId=all", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["reservations"].([]any), 1)

	// Admin approves it.
	w = doRequest(t, router, "PATCH", fmt.Sprintf("/api/admin/reservations/%d/status", reservationID),
		map[string]any{"status": "approved"}, true)
	require.Equal(t, http.StatusOK, w.Code)

	// The applicant sees the new status, by hyphen-free phone too.
	w = doRequest(t, router, "GET", "/api/reservations/my?phone=01098765432", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decodeBody(t, w)["reservations"].([]any)
	require.Len(t, mine, 1)
	entry := mine[0].(map[string]any)
	assert.Equal(t, model.StatusApproved, entry["status"])
	assert.Equal(t, "Seminar Room", entry["facility"].(map[string]any)["name"])

	// The transition left an audit trail.
	var logs []model.AdminLog
	require.NoError(t, db.Where("action = ?", "reservation_status").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, fmt.Sprintf("%d", reservationID), logs[0].TargetID)
}
