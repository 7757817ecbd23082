package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"facility-reservation-backend/internal/model"
)

// GetFacilities handles the GET /api/facilities request: every facility,
// most recently created first.
func (h *Handler) GetFacilities(c *gin.Context) {
	facilities, err := h.store.ListFacilities(c.Request.Context())
	if err != nil {
		storeErr(c, err)
		return
	}
	if facilities == nil {
		facilities = []model.Facility{}
	}
	respondOK(c, gin.H{"facilities": facilities})
}

type createFacilityRequest struct {
	Name        string          `json:"name" binding:"required"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	MinPeople   *int            `json:"min_people"`
	MaxPeople   *int            `json:"max_people"`
	Features    map[string]bool `json:"features"`
	IsActive    *bool           `json:"is_active"`
	OpenTime    string          `json:"open_time"`
	CloseTime   string          `json:"close_time"`
	ClosedDays  []string        `json:"closed_days"`
}

// CreateFacility handles the POST /api/facilities request. Omitted
// fields get defaults; occupancy ranges are stored as given.
func (h *Handler) CreateFacility(c *gin.Context) {
	var req createFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "name is required")
		return
	}

	facility := model.Facility{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Images:      req.Images,
		MinPeople:   1,
		MaxPeople:   10,
		Features:    req.Features,
		IsActive:    true,
		OpenTime:    "09:00",
		CloseTime:   "22:00",
		ClosedDays:  req.ClosedDays,
	}
	if req.MinPeople != nil {
		facility.MinPeople = *req.MinPeople
	}
	if req.MaxPeople != nil {
		facility.MaxPeople = *req.MaxPeople
	}
	if req.IsActive != nil {
		facility.IsActive = *req.IsActive
	}
	if req.OpenTime != "" {
		facility.OpenTime = req.OpenTime
	}
	if req.CloseTime != "" {
		facility.CloseTime = req.CloseTime
	}
	if facility.Images == nil {
		facility.Images = []string{}
	}
	if facility.ClosedDays == nil {
		facility.ClosedDays = []string{}
	}
	if facility.Features == nil {
		facility.Features = map[string]bool{}
	}

	if err := h.store.CreateFacility(c.Request.Context(), &facility); err != nil {
		storeErr(c, err)
		return
	}

	h.flushCache()
	respondOK(c, gin.H{"facility": facility})
}

// GetFacility handles the GET /api/facilities/:id request. Inactive and
// missing facilities both yield the same generic 404.
func (h *Handler) GetFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondErr(c, http.StatusNotFound, "facility not found")
		return
	}

	facility, err := h.store.GetActiveFacility(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondErr(c, http.StatusNotFound, "facility not found")
			return
		}
		storeErr(c, err)
		return
	}
	respondOK(c, gin.H{"facility": facility})
}
