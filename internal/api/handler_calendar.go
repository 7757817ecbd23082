package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"facility-reservation-backend/internal/logger"
	"facility-reservation-backend/internal/store"
)

// GetAdminCalendar handles the GET /api/admin/calendar request: pending
// and approved reservations bounded on start_at, joined with facility
// references, plus the active facility list. A failing facility-list
// sub-query degrades to an empty list rather than failing the request.
func (h *Handler) GetAdminCalendar(c *gin.Context) {
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "invalid to date")
		return
	}

	filter := store.CalendarFilter{From: from, To: to}
	if rawID := c.Query("facilityId"); rawID != "" && rawID != "all" {
		facilityID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			respondErr(c, http.StatusBadRequest, "invalid facilityId")
			return
		}
		filter.FacilityID = facilityID
	}

	reservations, err := h.store.CalendarReservations(c.Request.Context(), filter)
	if err != nil {
		storeErr(c, err)
		return
	}

	facilities, err := h.store.ActiveFacilityRefs(c.Request.Context())
	if err != nil {
		logger.Warn().Err(err).Msg("calendar facility list failed, returning empty list")
		facilities = []store.FacilityRef{}
	}
	if facilities == nil {
		facilities = []store.FacilityRef{}
	}

	respondOK(c, gin.H{
		"reservations": reservations,
		"facilities":   facilities,
	})
}
