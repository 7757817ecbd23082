package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"facility-reservation-backend/internal/logger"
	"facility-reservation-backend/internal/model"
	"facility-reservation-backend/internal/parse"
	"facility-reservation-backend/internal/store"
)

// GetMyReservations handles the GET /api/reservations/my request.
// Requires phone or email; phone matches both the raw value and its
// hyphen-stripped form.
func (h *Handler) GetMyReservations(c *gin.Context) {
	phone := c.Query("phone")
	email := c.Query("email")
	if phone == "" && email == "" {
		respondErr(c, http.StatusBadRequest, "phone or email is required")
		return
	}

	var (
		reservations []store.ReservationView
		err          error
	)
	if phone != "" {
		reservations, err = h.store.ReservationsByPhone(c.Request.Context(), phone, parse.NormalizePhone(phone))
	} else {
		reservations, err = h.store.ReservationsByEmail(c.Request.Context(), email)
	}
	if err != nil {
		storeErr(c, err)
		return
	}
	respondOK(c, gin.H{"reservations": reservations})
}

// GetPublicReservations handles the GET /api/reservations/public
// request: the privacy-scoped calendar for one facility. From bounds
// start_at, To bounds end_at.
func (h *Handler) GetPublicReservations(c *gin.Context) {
	rawID := c.Query("facilityId")
	if rawID == "" {
		respondErr(c, http.StatusBadRequest, "facilityId is required")
		return
	}
	facilityID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		respondErr(c, http.StatusBadRequest, "invalid facilityId")
		return
	}

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

	reservations, err := h.store.PublicReservations(c.Request.Context(), store.PublicFilter{
		FacilityID: facilityID,
		From:       from,
		To:         to,
	})
	if err != nil {
		storeErr(c, err)
		return
	}
	if reservations == nil {
		reservations = []store.PublicReservation{}
	}
	respondOK(c, gin.H{"reservations": reservations})
}

type createReservationRequest struct {
	FacilityID     int64     `json:"facility_id" binding:"required"`
	Purpose        string    `json:"purpose"`
	NumPeople      int       `json:"num_people"`
	StartAt        time.Time `json:"start_at" binding:"required"`
	EndAt          time.Time `json:"end_at" binding:"required"`
	ApplicantName  string    `json:"applicant_name" binding:"required"`
	ApplicantPhone string    `json:"applicant_phone" binding:"required"`
	ApplicantDept  string    `json:"applicant_dept"`
	ApplicantEmail string    `json:"applicant_email"`
}

// CreateReservation handles the POST /api/reservations request: the
// public submission path. New reservations always start as pending.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "facility_id, applicant_name, applicant_phone, start_at and end_at are required")
		return
	}
	if !req.StartAt.Before(req.EndAt) {
		respondErr(c, http.StatusBadRequest, "start_at must be before end_at")
		return
	}
	if req.NumPeople <= 0 {
		respondErr(c, http.StatusBadRequest, "num_people must be positive")
		return
	}
	if !parse.IsPlausiblePhone(parse.NormalizePhone(req.ApplicantPhone)) {
		respondErr(c, http.StatusBadRequest, "invalid phone number")
		return
	}

	if _, err := h.store.GetActiveFacility(c.Request.Context(), req.FacilityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondErr(c, http.StatusNotFound, "facility not found")
			return
		}
		storeErr(c, err)
		return
	}

	reservation := model.Reservation{
		FacilityID:     req.FacilityID,
		Status:         model.StatusPending,
		Purpose:        req.Purpose,
		NumPeople:      req.NumPeople,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		ApplicantName:  req.ApplicantName,
		ApplicantPhone: req.ApplicantPhone,
		ApplicantDept:  req.ApplicantDept,
		ApplicantEmail: req.ApplicantEmail,
	}
	if err := h.store.CreateReservation(c.Request.Context(), &reservation); err != nil {
		storeErr(c, err)
		return
	}

	h.notify(reservation.ID)
	respondOK(c, gin.H{"reservation": reservation})
}

type updateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateReservationStatus handles the PATCH
// /api/admin/reservations/:id/status request and records the transition
// in the admin log.
func (h *Handler) UpdateReservationStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondErr(c, http.StatusNotFound, "reservation not found")
		return
	}

	var req updateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "status is required")
		return
	}
	if !model.ValidStatus(req.Status) || req.Status == model.StatusPending {
		respondErr(c, http.StatusBadRequest, "status must be approved, rejected or cancelled")
		return
	}

	previous, err := h.store.GetReservation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondErr(c, http.StatusNotFound, "reservation not found")
			return
		}
		storeErr(c, err)
		return
	}

	reservation, err := h.store.UpdateReservationStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		storeErr(c, err)
		return
	}

	entry := model.AdminLog{
		Action:     "reservation_status",
		TargetType: "reservation",
		TargetID:   strconv.FormatInt(id, 10),
		Details: map[string]any{
			"from": previous.Status,
			"to":   req.Status,
		},
		IPAddress: c.ClientIP(),
	}
	if err := h.store.AppendAdminLog(c.Request.Context(), &entry); err != nil {
		logger.Warn().Err(err).Int64("reservation_id", id).Msg("failed to append admin log for status change")
	}

	h.notify(reservation.ID)
	respondOK(c, gin.H{"reservation": reservation})
}
