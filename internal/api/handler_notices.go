package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facility-reservation-backend/internal/model"
)

// GetNotices handles the GET /api/notices request: pinned notices first,
// then newest first, up to limit (default 10). active=true restricts to
// active notices.
func (h *Handler) GetNotices(c *gin.Context) {
	limit := parseLimit(c, 10)
	activeOnly := c.Query("active") == "true"

	notices, err := h.store.ListNotices(c.Request.Context(), activeOnly, limit)
	if err != nil {
		storeErr(c, err)
		return
	}
	if notices == nil {
		notices = []model.Notice{}
	}
	respondOK(c, gin.H{"notices": notices})
}

type createNoticeRequest struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	IsActive  *bool      `json:"is_active"`
	IsPinned  *bool      `json:"is_pinned"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// CreateNotice handles the POST /api/notices request.
func (h *Handler) CreateNotice(c *gin.Context) {
	var req createNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid notice payload")
		return
	}
	if req.Title == "" || req.Content == "" {
		respondErr(c, http.StatusBadRequest, "title and content are required")
		return
	}

	notice := model.Notice{
		Title:     req.Title,
		Content:   req.Content,
		IsActive:  true,
		IsPinned:  false,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.IsActive != nil {
		notice.IsActive = *req.IsActive
	}
	if req.IsPinned != nil {
		notice.IsPinned = *req.IsPinned
	}

	if err := h.store.CreateNotice(c.Request.Context(), &notice); err != nil {
		storeErr(c, err)
		return
	}

	h.flushCache()
	respondOK(c, gin.H{"notice": notice})
}
